// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports service status and the active dimensioning defaults

package handlers

import "net/http"

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status              string  `json:"status"`
	TopNDays            int     `json:"top_n_days"`
	BlockingProbability float64 `json:"blocking_probability"`
	MaxChannels         int     `json:"max_channels"`
	CachedPlans         int     `json:"cached_plans"`
}

// Health returns API health status and the server's dimensioning defaults.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:              "ok",
		TopNDays:            h.cfg.TopNDays,
		BlockingProbability: h.cfg.BlockingProbability,
		MaxChannels:         h.cfg.MaxChannels,
		CachedPlans:         h.cache.Len(),
	})
}
