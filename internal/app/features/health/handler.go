// internal/app/features/health/handler.go
package health

import (
	"net/http"
	"time"

	"github.com/dalemusser/parishhub/internal/app/system/respond"
)

// Handler serves the unauthenticated liveness endpoint.
type Handler struct {
	Environment string
}

func NewHandler(environment string) *Handler {
	return &Handler{Environment: environment}
}

type healthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
}

// Serve handles GET /health.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC(),
		Environment: h.Environment,
	})
}
