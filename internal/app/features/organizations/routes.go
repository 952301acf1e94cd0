// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/dalemusser/parishhub/internal/app/system/auth"
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the organization endpoints. Listing and creation run before
// authentication; mutation needs the manage-organization capability.
func Routes(h *Handler, tm *auth.TokenManager, lookup auth.UserLookup) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeOrganization)
	r.Post("/", h.HandleCreate)

	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(tm, lookup))
		r.Use(authz.RequirePermission(func(c authz.Capabilities) bool { return c.ManageOrganization }))
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})

	return r
}
