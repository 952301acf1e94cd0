// internal/app/features/lessons/routes.go
package lessons

import (
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the lesson inventory endpoints. Reading is staff-wide;
// mutation needs the manage-lessons capability.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authz.RequireRole(models.RoleAdmin, models.RoleClerk, models.RoleInstructor))

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeLesson)

	r.Group(func(r chi.Router) {
		r.Use(authz.RequirePermission(func(c authz.Capabilities) bool { return c.ManageLessons }))
		r.Post("/", h.HandleCreate)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})

	return r
}
