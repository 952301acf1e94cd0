// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/dalemusser/parishhub/internal/app/features/admin"
	attendancefeature "github.com/dalemusser/parishhub/internal/app/features/attendance"
	authfeature "github.com/dalemusser/parishhub/internal/app/features/authapi"
	classattendancefeature "github.com/dalemusser/parishhub/internal/app/features/classattendance"
	classesfeature "github.com/dalemusser/parishhub/internal/app/features/classes"
	classmembersfeature "github.com/dalemusser/parishhub/internal/app/features/classmembers"
	communionfeature "github.com/dalemusser/parishhub/internal/app/features/communion"
	customersfeature "github.com/dalemusser/parishhub/internal/app/features/customers"
	healthfeature "github.com/dalemusser/parishhub/internal/app/features/health"
	instructorsfeature "github.com/dalemusser/parishhub/internal/app/features/instructors"
	lessonsfeature "github.com/dalemusser/parishhub/internal/app/features/lessons"
	moderatorfeature "github.com/dalemusser/parishhub/internal/app/features/moderator"
	organizationsfeature "github.com/dalemusser/parishhub/internal/app/features/organizations"
	profilefeature "github.com/dalemusser/parishhub/internal/app/features/profile"
	userstore "github.com/dalemusser/parishhub/internal/app/store/users"
	"github.com/dalemusser/parishhub/internal/app/system/auth"
	"github.com/dalemusser/parishhub/internal/app/system/imagestore"
	"github.com/dalemusser/parishhub/internal/app/system/mailer"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. ParishHub mounts its JSON API under the
// /church prefix: the auth endpoints and organization bootstrap path are
// public, everything else sits behind bearer-token authentication with the
// per-feature role gates applied inside each feature's Routes.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.ParishHubMongoDatabase

	tokens := auth.NewTokenManager(appCfg.JWTSecret, appCfg.TokenExpiry)

	// Authentication loads the live user on every request so role changes
	// and deletions take effect immediately.
	users := userstore.New(db)
	lookup := auth.UserLookup(users.GetByID)

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)

	images := imagestore.New(appCfg.ImgurClientID, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(coreCfg.Env)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/church", func(r chi.Router) {
		// Public: login, first-admin registration, organization bootstrap.
		// The organizations feature applies auth to its own mutating routes.
		authHandler := authfeature.NewHandler(db, tokens, logger)
		r.Mount("/auth", authfeature.Routes(authHandler))

		orgHandler := organizationsfeature.NewHandler(db, logger)
		r.Mount("/organizations", organizationsfeature.Routes(orgHandler, tokens, lookup))

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate(tokens, lookup))

			profileHandler := profilefeature.NewHandler(db, logger)
			r.Mount("/users", profilefeature.Routes(profileHandler))

			adminHandler := adminfeature.NewHandler(db, mail, appCfg.SiteName, logger)
			r.Mount("/admin", adminfeature.Routes(adminHandler))

			moderatorHandler := moderatorfeature.NewHandler(db, logger)
			r.Mount("/moderator", moderatorfeature.Routes(moderatorHandler))

			classesHandler := classesfeature.NewHandler(db, logger)
			r.Mount("/classes", classesfeature.Routes(classesHandler))

			classAttendanceHandler := classattendancefeature.NewHandler(db, logger)
			r.Mount("/class-attendance", classattendancefeature.Routes(classAttendanceHandler))

			classMembersHandler := classmembersfeature.NewHandler(db, logger)
			r.Mount("/class-members", classmembersfeature.Routes(classMembersHandler))

			communionHandler := communionfeature.NewHandler(db, logger)
			r.Mount("/communion-attendance", communionfeature.Routes(communionHandler))

			customersHandler := customersfeature.NewHandler(db, logger)
			r.Mount("/customers", customersfeature.Routes(customersHandler))

			lessonsHandler := lessonsfeature.NewHandler(db, logger)
			r.Mount("/lessons", lessonsfeature.Routes(lessonsHandler))

			attendanceHandler := attendancefeature.NewHandler(db, logger)
			r.Mount("/attendance", attendancefeature.Routes(attendanceHandler))

			instructorsHandler := instructorsfeature.NewHandler(db, images, logger)
			r.Mount("/instructors", instructorsfeature.Routes(instructorsHandler))
		})
	})

	return r, nil
}
