// ABOUTME: Data models for per-cell SDCCH dimensioning results
// ABOUTME: Current inventory, signed group delta, and the derived instruction

package models

// ChannelsPerGroup is the number of SDCCH subchannels in one SDCCH8 group.
const ChannelsPerGroup = 8

// Action is the conversion instruction derived for a cell.
type Action string

const (
	ActionNone             Action = "NONE"
	ActionAddSignalling    Action = "ADD_SIGNALLING"
	ActionConvertToTraffic Action = "CONVERT_TO_TRAFFIC"
	ActionAddPacketData    Action = "ADD_PACKET_DATA"
)

// ActionForDelta classifies a signed group delta.
func ActionForDelta(delta int) Action {
	switch {
	case delta > 0:
		return ActionAddSignalling
	case delta < 0:
		return ActionConvertToTraffic
	default:
		return ActionNone
	}
}

// GroupsFor returns ceil(channels/8), the SDCCH8 groups needed to hold
// the given number of signalling channels.
func GroupsFor(channels int) int {
	if channels <= 0 {
		return 0
	}
	return (channels + ChannelsPerGroup - 1) / ChannelsPerGroup
}

// CellInventory is the current SDCCH8 group count of a cell.
type CellInventory struct {
	CellID                  string `json:"cell_id"`
	CurrentSignallingGroups int    `json:"current_signalling_groups"`
}

// NewCellInventory derives the group count from a configured channel count.
func NewCellInventory(cellID string, configuredChannels int) CellInventory {
	return CellInventory{CellID: cellID, CurrentSignallingGroups: GroupsFor(configuredChannels)}
}

// DimensioningResult is produced once per cell per run.
type DimensioningResult struct {
	CellID                   string  `json:"cell_id"`
	OfferedErlangs           float64 `json:"offered_erlangs"`
	RequiredChannels         int     `json:"required_channels"`
	RequiredSignallingGroups int     `json:"required_signalling_groups"`
	CurrentSignallingGroups  int     `json:"current_signalling_groups"`
	Delta                    int     `json:"delta"`
	Action                   Action  `json:"action"`
}

// Magnitude is the number of channel conversions the result asks for.
func (r DimensioningResult) Magnitude() int {
	if r.Delta < 0 {
		return -r.Delta
	}
	return r.Delta
}

// Instruction returns the conversion instruction for the planner.
func (r DimensioningResult) Instruction() Instruction {
	return Instruction{CellID: r.CellID, Action: r.Action, Magnitude: r.Magnitude()}
}

// Instruction tells the planner how many channels of a cell to retype.
type Instruction struct {
	CellID    string `json:"cell_id"`
	Action    Action `json:"action"`
	Magnitude int    `json:"magnitude"`
}
