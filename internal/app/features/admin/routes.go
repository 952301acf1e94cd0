// internal/app/features/admin/routes.go
package admin

import (
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin user management endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authz.RequireRole(models.RoleAdmin))

	r.Get("/users", h.ServeList)
	r.Get("/users/{id}", h.ServeUser)
	r.Post("/users", h.HandleCreate)
	r.Put("/users/{id}/role", h.HandleUpdateRole)
	r.Delete("/users/{id}", h.HandleDelete)

	return r
}
