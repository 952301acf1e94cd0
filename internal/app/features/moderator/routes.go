// internal/app/features/moderator/routes.go
package moderator

import (
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the moderation endpoints. Browsing and reporting is open to
// admins and clerks; working the report queue needs the view-reports
// capability.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authz.RequireRole(models.RoleAdmin, models.RoleClerk))
		r.Get("/users", h.ServeUsers)
		r.Get("/users/{id}", h.ServeUser)
		r.Post("/users/{id}/report", h.HandleReport)
	})

	r.Group(func(r chi.Router) {
		r.Use(authz.RequirePermission(func(c authz.Capabilities) bool { return c.ViewReports }))
		r.Get("/reports", h.ServeReports)
		r.Put("/reports/{id}/status", h.HandleReportStatus)
	})

	return r
}
