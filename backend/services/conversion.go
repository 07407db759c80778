// ABOUTME: Physical channel conversion planner for one cell
// ABOUTME: Ordered eligible-channel retyping honoring TRX and BCCH protections

package services

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/ubaidashraf22/RF/backend/models"
)

type scanDirection int

const (
	scanForward scanDirection = iota
	scanReverse
)

// channelPredicate inspects channel i in the context of the whole cell.
type channelPredicate func(chs []models.PhysicalChannel, i int) bool

// retypeOp describes one ordered retyping pass.
type retypeOp struct {
	direction scanDirection
	eligible  channelPredicate
	protected channelPredicate
	target    models.ChannelType
	budget    int
}

// retype converts up to op.budget eligible, unprotected channels to
// op.target in scan order. Eligibility may depend on earlier conversions,
// so the scan repeats while it still makes progress.
func retype(chs []models.PhysicalChannel, op retypeOp) int {
	converted := 0
	for converted < op.budget {
		progress := false
		for k := range chs {
			i := k
			if op.direction == scanReverse {
				i = len(chs) - 1 - k
			}
			if op.protected(chs, i) || !op.eligible(chs, i) {
				continue
			}
			chs[i].ProposedType = op.target
			converted++
			progress = true
			if converted >= op.budget {
				break
			}
		}
		if !progress {
			break
		}
	}
	return converted
}

func isProtected(chs []models.PhysicalChannel, i int) bool {
	return chs[i].ProtectedIndex
}

// trafficOnTRX counts unprotected traffic channels left on a TRX.
func trafficOnTRX(chs []models.PhysicalChannel, trx string) int {
	n := 0
	for _, ch := range chs {
		if ch.TRXID == trx && !ch.ProtectedIndex && ch.ProposedType.IsTraffic() {
			n++
		}
	}
	return n
}

// signallingOffBCCH reports whether any SDCCH8 remains outside the main BCCH TRX.
func signallingOffBCCH(chs []models.PhysicalChannel) bool {
	for _, ch := range chs {
		if !ch.MainBCCH && ch.ProposedType == models.ChannelSDCCH8 {
			return true
		}
	}
	return false
}

// growSignalling takes the lowest-indexed traffic channels, keeping at
// least one traffic channel on every TRX.
func growSignalling(budget int) retypeOp {
	return retypeOp{
		direction: scanForward,
		eligible: func(chs []models.PhysicalChannel, i int) bool {
			return chs[i].ProposedType.IsTraffic() && trafficOnTRX(chs, chs[i].TRXID) > 1
		},
		protected: isProtected,
		target:    models.ChannelSDCCH8,
		budget:    budget,
	}
}

// growPacketData takes the highest-indexed traffic channels.
func growPacketData(budget int) retypeOp {
	return retypeOp{
		direction: scanReverse,
		eligible: func(chs []models.PhysicalChannel, i int) bool {
			return chs[i].ProposedType.IsTraffic()
		},
		protected: isProtected,
		target:    models.ChannelPDCCH,
		budget:    budget,
	}
}

// shrinkSignalling returns SDCCH8 channels to full-rate traffic, leaving
// the main BCCH TRX for last.
func shrinkSignalling(budget int) retypeOp {
	return retypeOp{
		direction: scanForward,
		eligible: func(chs []models.PhysicalChannel, i int) bool {
			if chs[i].ProposedType != models.ChannelSDCCH8 {
				return false
			}
			return !chs[i].MainBCCH || !signallingOffBCCH(chs)
		},
		protected: isProtected,
		target:    models.ChannelTCHFR,
		budget:    budget,
	}
}

// ChannelConversionPlanner realizes a cell's instruction on its channels.
type ChannelConversionPlanner struct{}

// NewChannelConversionPlanner creates a planner.
func NewChannelConversionPlanner() *ChannelConversionPlanner {
	return &ChannelConversionPlanner{}
}

// Plan applies instr to a copy of one cell's channels, in inventory order,
// and returns the planned channels with the records of those that changed.
// The input slice is never modified. Fewer eligible channels than
// requested is not an error; the plan is simply shorter.
func (p *ChannelConversionPlanner) Plan(instr models.Instruction, channels []models.PhysicalChannel) ([]models.PhysicalChannel, []models.ConversionRecord, error) {
	for _, ch := range channels {
		if ch.CellID != instr.CellID {
			return nil, nil, &models.CellError{
				CellID: instr.CellID,
				Stage:  models.StageConversion,
				Err:    fmt.Errorf("channel %s/%d belongs to cell %s", ch.TRXID, ch.ChannelIndex, ch.CellID),
			}
		}
	}

	planned := slices.Clone(channels)
	for i := range planned {
		if planned[i].ProposedType == "" {
			planned[i].ProposedType = planned[i].CurrentType
		}
	}

	var op retypeOp
	switch instr.Action {
	case models.ActionAddSignalling:
		op = growSignalling(instr.Magnitude)
	case models.ActionAddPacketData:
		op = growPacketData(instr.Magnitude)
	case models.ActionConvertToTraffic:
		op = shrinkSignalling(instr.Magnitude)
	}

	if op.budget > 0 {
		converted := retype(planned, op)
		if converted < op.budget {
			slog.Warn("Partial channel conversion",
				"cell", instr.CellID,
				"action", instr.Action,
				"requested", op.budget,
				"converted", converted,
			)
		} else {
			slog.Debug("Channels converted", "cell", instr.CellID, "action", instr.Action, "converted", converted)
		}
	}

	markPacketPriority(planned)
	return planned, ConversionRecords(planned), nil
}

// markPacketPriority flags channels that packet scheduling may use.
func markPacketPriority(chs []models.PhysicalChannel) {
	for i := range chs {
		chs[i].PacketPriority = ""
		if chs[i].ProposedType.CarriesPackets() {
			chs[i].PacketPriority = models.PacketPriorityEGPRS
		}
	}
}

// ConversionRecords lists the changed channels in their given order.
func ConversionRecords(chs []models.PhysicalChannel) []models.ConversionRecord {
	var records []models.ConversionRecord
	for _, ch := range chs {
		if !ch.Changed() {
			continue
		}
		records = append(records, models.ConversionRecord{
			CellID:         ch.CellID,
			TRXID:          ch.TRXID,
			ChannelIndex:   ch.ChannelIndex,
			MainBCCH:       ch.MainBCCH,
			FromType:       ch.CurrentType,
			ToType:         ch.ProposedType,
			PacketPriority: ch.PacketPriority,
		})
	}
	return records
}
