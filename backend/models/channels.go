// ABOUTME: Physical radio channel inventory and conversion records
// ABOUTME: Channel type vocabulary, protected indices, and report rows

package models

import "strings"

// ChannelType is a physical channel type label. Labels outside the known
// vocabulary are kept verbatim and never eligible for retyping.
type ChannelType string

const (
	ChannelSDCCH8 ChannelType = "SDCCH8"
	ChannelPDCCH  ChannelType = "PDCCH"
	ChannelTCHFR  ChannelType = "TCHFR"
	ChannelTCHHR  ChannelType = "TCHHR"
)

// PacketPriorityEGPRS marks channels that may carry EGPRS packet traffic.
const PacketPriorityEGPRS = "EGPRSNORCH"

// ProtectedChannelIndices are the reserved channel numbers on the main BCCH
// TRX that are never retyped.
var ProtectedChannelIndices = []int{6, 7}

// ParseChannelType normalizes a raw label from an inventory export.
func ParseChannelType(label string) ChannelType {
	return ChannelType(strings.ToUpper(strings.TrimSpace(label)))
}

// IsTraffic reports whether t is a full- or half-rate traffic channel.
func (t ChannelType) IsTraffic() bool {
	return t == ChannelTCHFR || t == ChannelTCHHR
}

// CarriesPackets reports whether t is eligible for EGPRS packet scheduling.
func (t ChannelType) CarriesPackets() bool {
	return t == ChannelPDCCH || t.IsTraffic()
}

// IsProtectedIndex reports whether channel index on a TRX is reserved.
func IsProtectedIndex(index int, mainBCCH bool) bool {
	if !mainBCCH {
		return false
	}
	for _, p := range ProtectedChannelIndices {
		if index == p {
			return true
		}
	}
	return false
}

// PhysicalChannel is one timeslot of one TRX in a cell's inventory.
// Only ProposedType and PacketPriority change during planning.
type PhysicalChannel struct {
	CellID         string      `json:"cell_id"`
	TRXID          string      `json:"trx_id"`
	ChannelIndex   int         `json:"channel_index"`
	CurrentType    ChannelType `json:"current_type"`
	ProposedType   ChannelType `json:"proposed_type,omitempty"`
	MainBCCH       bool        `json:"main_bcch_trx"`
	ProtectedIndex bool        `json:"protected_index"`
	PacketPriority string      `json:"packet_priority,omitempty"`
}

// NewPhysicalChannel creates a channel whose proposed type starts equal to
// its current type.
func NewPhysicalChannel(cellID, trxID string, index int, current ChannelType, mainBCCH bool) PhysicalChannel {
	return PhysicalChannel{
		CellID:         cellID,
		TRXID:          trxID,
		ChannelIndex:   index,
		CurrentType:    current,
		ProposedType:   current,
		MainBCCH:       mainBCCH,
		ProtectedIndex: IsProtectedIndex(index, mainBCCH),
	}
}

// Changed reports whether planning retyped the channel.
func (c PhysicalChannel) Changed() bool {
	return c.ProposedType != c.CurrentType
}

// ConversionRecord is one changed channel in the output plan.
type ConversionRecord struct {
	CellID         string      `json:"cell_id"`
	TRXID          string      `json:"trx_id"`
	ChannelIndex   int         `json:"channel_index"`
	MainBCCH       bool        `json:"main_bcch_trx"`
	FromType       ChannelType `json:"from_type"`
	ToType         ChannelType `json:"to_type"`
	PacketPriority string      `json:"packet_priority,omitempty"`
}
