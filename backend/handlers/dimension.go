// ABOUTME: HTTP handler running the dimensioning pipeline
// ABOUTME: Validates the request, then serves from cache or a deduplicated run

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ubaidashraf22/RF/backend/cache"
	"github.com/ubaidashraf22/RF/backend/middleware"
	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/backend/services"
)

// Dimension runs the full pipeline for POST /api/v1/dimension. Identical
// bodies are answered from cache, and concurrent identical requests share
// one run.
func (h *Handler) Dimension(w http.ResponseWriter, r *http.Request) {
	limit := int64(h.cfg.MaxRequestMB) << 20
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, "Request body too large", fmt.Sprintf("limit is %d MB", h.cfg.MaxRequestMB), http.StatusRequestEntityTooLarge)
			return
		}
		h.writeError(w, "Failed to read request body", err.Error(), http.StatusBadRequest)
		return
	}

	var req models.PlanRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return
	}
	opts, err := h.pipelineOptions(req)
	if err != nil {
		h.writeError(w, "Invalid parameters", err.Error(), http.StatusBadRequest)
		return
	}

	key := cache.Key(body)
	if cached, ok := h.cache.Get(key); ok {
		cached.Metadata.Cached = true
		h.metrics.RecordRun(&cached, true)
		h.writeJSON(w, http.StatusOK, cached)
		return
	}

	v, err, shared := h.flight.Do(key, func() (any, error) {
		p, err := services.NewPipeline(opts)
		if err != nil {
			return nil, err
		}
		// Shared callers must not fail because the first one went away.
		out, err := p.Run(context.WithoutCancel(r.Context()), services.InputFromRequest(req))
		if err != nil {
			return nil, err
		}
		resp := out.Response(time.Now().UTC())
		h.cache.Set(key, resp)
		h.metrics.RecordRun(&resp, false)
		return resp, nil
	})
	if err != nil {
		h.metrics.RecordFailure()
		requestID := middleware.RequestID(r.Context())
		var cellErr *models.CellError
		if errors.As(err, &cellErr) {
			slog.Warn("Dimensioning stopped on cell failure",
				"request_id", requestID,
				"cell", cellErr.CellID,
				"stage", cellErr.Stage,
			)
			h.writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{
				Error:   "Cell could not be dimensioned",
				Details: cellErr.Error(),
				Code:    http.StatusUnprocessableEntity,
			})
			return
		}
		slog.Error("Dimensioning run failed", "request_id", requestID, "error", err)
		h.writeError(w, "Dimensioning failed", err.Error(), http.StatusInternalServerError)
		return
	}
	if shared {
		slog.Debug("Dimensioning run shared", "key", key)
	}

	h.writeJSON(w, http.StatusOK, v.(models.PlanResponse))
}

// pipelineOptions merges request overrides onto the server defaults.
func (h *Handler) pipelineOptions(req models.PlanRequest) (services.PipelineOptions, error) {
	opts := services.PipelineOptions{
		TopNDays:            h.cfg.TopNDays,
		BlockingProbability: h.cfg.BlockingProbability,
		MaxChannels:         h.cfg.MaxChannels,
		Workers:             h.cfg.PlanWorkers,
	}

	if req.TopNDays != 0 {
		if req.TopNDays < 0 {
			return opts, fmt.Errorf("%w: got %d", models.ErrInvalidTopN, req.TopNDays)
		}
		opts.TopNDays = req.TopNDays
	}
	if req.BlockingProbability != 0 {
		if err := services.ValidateBlocking(req.BlockingProbability); err != nil {
			return opts, err
		}
		opts.BlockingProbability = req.BlockingProbability
	}

	for _, d := range req.ExcludedDates {
		if _, err := models.ParseDate(string(d)); err != nil {
			return opts, fmt.Errorf("excluded date: %w", err)
		}
	}
	for _, pd := range req.PacketData {
		if pd.CellID == "" {
			return opts, errors.New("packet_data entry without cell_id")
		}
		if pd.Action != "" && pd.Action != models.ActionAddPacketData {
			return opts, fmt.Errorf("packet_data for cell %s has action %s, want %s", pd.CellID, pd.Action, models.ActionAddPacketData)
		}
		if pd.Magnitude < 0 {
			return opts, fmt.Errorf("packet_data for cell %s has negative magnitude", pd.CellID)
		}
	}
	return opts, nil
}
