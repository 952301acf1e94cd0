// internal/app/features/profile/routes.go
package profile

import "github.com/go-chi/chi/v5"

// Routes mounts the self-service profile endpoints. The caller must already
// be authenticated; any role may use them.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/profile", h.ServeProfile)
	r.Put("/profile", h.HandleUpdateProfile)
	r.Put("/change-password", h.HandleChangePassword)
	return r
}
