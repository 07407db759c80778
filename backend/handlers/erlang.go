// ABOUTME: HTTP handlers for standalone Erlang-B queries
// ABOUTME: Required channels for a load, and blocking for a channel count

package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/backend/services"
)

// RequiredChannels answers GET /api/v1/erlang/channels?load=A&blocking=P.
func (h *Handler) RequiredChannels(w http.ResponseWriter, r *http.Request) {
	load, err := loadParam(r)
	if err != nil {
		h.writeError(w, "Invalid load", err.Error(), http.StatusBadRequest)
		return
	}

	target := h.cfg.BlockingProbability
	if raw := r.URL.Query().Get("blocking"); raw != "" {
		target, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			h.writeError(w, "Invalid blocking", err.Error(), http.StatusBadRequest)
			return
		}
	}

	n, err := h.calc.RequiredChannels(load, target)
	switch {
	case errors.Is(err, models.ErrInvalidBlocking):
		h.writeError(w, "Invalid blocking", err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrCapacityOverflow):
		h.writeError(w, "Load exceeds channel bound", err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		h.writeError(w, "Calculation failed", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, models.RequiredChannelsResponse{
		OfferedErlangs:   load,
		TargetBlocking:   target,
		RequiredChannels: n,
		RequiredGroups:   models.GroupsFor(n),
		AchievedBlocking: h.calc.Blocking(load, n),
	})
}

// Blocking answers GET /api/v1/erlang/blocking?load=A&channels=N.
func (h *Handler) Blocking(w http.ResponseWriter, r *http.Request) {
	load, err := loadParam(r)
	if err != nil {
		h.writeError(w, "Invalid load", err.Error(), http.StatusBadRequest)
		return
	}

	channels, err := strconv.Atoi(r.URL.Query().Get("channels"))
	if err != nil || channels < 0 {
		h.writeError(w, "Invalid channels", "channels must be a non-negative integer", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, models.BlockingResponse{
		OfferedErlangs: load,
		Channels:       channels,
		Blocking:       services.ErlangB(load, channels),
	})
}

func loadParam(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("load")
	if raw == "" {
		return 0, errors.New("load is required")
	}
	load, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(load) || math.IsInf(load, 0) || load < 0 {
		return 0, fmt.Errorf("load must be a finite non-negative number, got %v", load)
	}
	return load, nil
}
