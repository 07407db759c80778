// ABOUTME: Tests for the result and conversion tables
// ABOUTME: Validates row rendering and tab switching

package results

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubaidashraf22/RF/backend/models"
)

func plan() *models.PlanResponse {
	return &models.PlanResponse{
		Results: []models.DimensioningResult{
			{CellID: "1001", OfferedErlangs: 9, RequiredChannels: 20, RequiredSignallingGroups: 3, CurrentSignallingGroups: 2, Delta: 1, Action: models.ActionAddSignalling},
			{CellID: "1002", OfferedErlangs: 0.2, RequiredChannels: 4, RequiredSignallingGroups: 1, CurrentSignallingGroups: 1, Delta: 0, Action: models.ActionNone},
		},
		Conversions: []models.ConversionRecord{
			{CellID: "1001", TRXID: "0", ChannelIndex: 2, MainBCCH: true, FromType: models.ChannelTCHFR, ToType: models.ChannelSDCCH8},
		},
	}
}

func TestCellRows(t *testing.T) {
	rows := CellRows(plan().Results, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1001", "9.000", "20", "3", "2", "+1", "ADD_SIGNALLING"}, []string(rows[0]))
	assert.Equal(t, "+0", rows[1][5])
}

func TestCellRows_PacketDataCell(t *testing.T) {
	resp := plan()
	resp.Conversions = append(resp.Conversions, models.ConversionRecord{
		CellID: "1002", TRXID: "1", ChannelIndex: 7, FromType: models.ChannelTCHFR, ToType: models.ChannelPDCCH,
	})

	rows := CellRows(resp.Results, resp.PacketDataCells())
	require.Len(t, rows, 2)
	assert.Equal(t, "ADD_SIGNALLING", rows[0][6])
	assert.Equal(t, "ADD_PACKET_DATA", rows[1][6])
}

func TestConversionRows(t *testing.T) {
	rows := ConversionRows(plan().Conversions)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1001", "0", "2", "yes", "TCHFR", "SDCCH8", ""}, []string(rows[0]))
}

func TestTablesToggle(t *testing.T) {
	tables := New(plan(), 20)
	assert.Equal(t, ViewCells, tables.Active())
	assert.Contains(t, tables.View(), "Cells (2)")

	tables.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ViewConversions, tables.Active())
	assert.Equal(t, "1001", tables.SelectedCell())

	tables.Toggle()
	assert.Equal(t, ViewCells, tables.Active())
}

func TestTablesNavigate(t *testing.T) {
	tables := New(plan(), 20)
	assert.Equal(t, "1001", tables.SelectedCell())

	tables.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "1002", tables.SelectedCell())
}

func TestTablesEmptyConversions(t *testing.T) {
	resp := plan()
	resp.Conversions = nil
	tables := New(resp, 20)
	tables.Toggle()

	assert.True(t, strings.Contains(tables.View(), "No channel conversions"))
	assert.Equal(t, "", tables.SelectedCell())
}

func TestSetHeightKeepsRows(t *testing.T) {
	tables := New(plan(), 40)
	tables.SetHeight(2)
	assert.Len(t, tables.cells.Rows(), 2)
	assert.Contains(t, tables.View(), "1001")
}
