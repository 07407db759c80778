// ABOUTME: HTTP handlers for the SDCCH dimensioning API
// ABOUTME: Shared handler state and JSON response helpers

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ubaidashraf22/RF/backend/cache"
	"github.com/ubaidashraf22/RF/backend/config"
	"github.com/ubaidashraf22/RF/backend/metrics"
	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/backend/services"
)

type Handler struct {
	cfg     *config.Config
	cache   *cache.Cache[models.PlanResponse]
	metrics *metrics.Collector
	calc    *services.CapacityCalculator
	flight  singleflight.Group
}

// NewHandler wires handlers to their dependencies. A nil cfg selects the
// defaults, a nil cache gets a fresh one, and a nil collector disables metrics.
func NewHandler(cfg *config.Config, c *cache.Cache[models.PlanResponse], m *metrics.Collector) *Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	if c == nil {
		c = cache.New[models.PlanResponse](time.Duration(cfg.CacheTTL) * time.Second)
	}
	return &Handler{
		cfg:     cfg,
		cache:   c,
		metrics: m,
		calc:    services.NewCapacityCalculator(cfg.MaxChannels),
	}
}

// writeJSON writes data as JSON with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError writes an ErrorResponse with the given status code.
func (h *Handler) writeError(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}
