// internal/app/features/communion/routes.go
package communion

import (
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the communion scan endpoints. Scanning is staff work.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authz.RequireRole(models.RoleAdmin, models.RoleClerk))

	r.Get("/latest", h.ServeLatest)
	r.Get("/latest/stats", h.ServeLatestStats)
	r.Get("/range", h.ServeRange)
	r.Get("/stats/daily", h.ServeDailyStats)
	r.Post("/scan", h.HandleScan)

	return r
}
