// internal/app/features/classattendance/routes.go
package classattendance

import (
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the member-keyed attendance endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authz.RequireRole(models.RoleAdmin, models.RoleClerk, models.RoleInstructor))

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{attendanceID}", h.ServeRecord)
	r.Put("/{attendanceID}", h.HandleUpdate)
	r.Delete("/{attendanceID}", h.HandleDelete)

	return r
}
