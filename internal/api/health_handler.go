package api

import (
	"net/http"

	"github.com/pmsdemo/pms-api/internal/api/shared"
	"github.com/pmsdemo/pms-api/internal/service"
)

// Service identity reported by the health endpoint.
const (
	ServiceName    = "PMS API"
	ServiceVersion = "1.0.0"
)

// HealthHandler reports liveness together with record counts.
type HealthHandler struct {
	stats service.StatsService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(stats service.StatsService) *HealthHandler {
	if stats == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("stats service cannot be nil for HealthHandler")
	}
	return &HealthHandler{stats: stats}
}

// Health handles GET /health requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Health check failed")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": ServiceName,
		"version": ServiceVersion,
		"stats":   stats,
	})
}
