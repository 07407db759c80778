// ABOUTME: Request and response envelopes for the dimensioning API
// ABOUTME: JSON-serializable structures shared by the backend and CLI

package models

import "time"

// PlanRequest is the body of POST /api/v1/dimension.
type PlanRequest struct {
	Samples             []TrafficSample    `json:"samples"`
	Signalling          []SignallingConfig `json:"signalling"`
	Inventory           []CellInventory    `json:"inventory,omitempty"`
	ExcludedDates       []Date             `json:"excluded_dates,omitempty"`
	Channels            []PhysicalChannel  `json:"channels"`
	PacketData          []Instruction      `json:"packet_data,omitempty"`
	TopNDays            int                `json:"top_n_days,omitempty"`
	BlockingProbability float64            `json:"blocking_probability,omitempty"`
	FailFast            bool               `json:"fail_fast,omitempty"`
}

// PlanResponse is the result of a dimensioning run.
type PlanResponse struct {
	Estimates   []CellLoadEstimate   `json:"estimates"`
	Results     []DimensioningResult `json:"results"`
	Conversions []ConversionRecord   `json:"conversions"`
	Errors      []CellErrorInfo      `json:"errors"`
	Metadata    Metadata             `json:"metadata"`
}

// PacketDataCells returns the cells whose conversions added packet data
// channels. Those cells ran a packet-data instruction in place of the
// action on their DimensioningResult.
func (r *PlanResponse) PacketDataCells() map[string]bool {
	cells := make(map[string]bool)
	for _, c := range r.Conversions {
		if c.ToType == ChannelPDCCH {
			cells[c.CellID] = true
		}
	}
	return cells
}

// Metadata contains response metadata
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	Cached      bool      `json:"cached"`
	Cells       int       `json:"cells"`
	Conversions int       `json:"conversions"`
}

// RequiredChannelsResponse is returned by GET /api/v1/erlang/channels.
type RequiredChannelsResponse struct {
	OfferedErlangs   float64 `json:"offered_erlangs"`
	TargetBlocking   float64 `json:"target_blocking"`
	RequiredChannels int     `json:"required_channels"`
	RequiredGroups   int     `json:"required_signalling_groups"`
	AchievedBlocking float64 `json:"achieved_blocking"`
}

// BlockingResponse is returned by GET /api/v1/erlang/blocking.
type BlockingResponse struct {
	OfferedErlangs float64 `json:"offered_erlangs"`
	Channels       int     `json:"channels"`
	Blocking       float64 `json:"blocking"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
