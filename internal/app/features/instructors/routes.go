// internal/app/features/instructors/routes.go
package instructors

import (
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the instructor management endpoints behind the
// manage-users capability.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authz.RequirePermission(func(c authz.Capabilities) bool { return c.ManageUsers }))

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeInstructor)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
