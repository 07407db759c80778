// ABOUTME: Scrollable tables of per-cell results and channel conversions
// ABOUTME: Wraps bubbles/table with a tab toggle between the two views

package results

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/cli/internal/tui/icons"
	"github.com/ubaidashraf22/RF/cli/internal/tui/styles"
)

// View selects which table is shown
type View int

const (
	ViewCells View = iota
	ViewConversions
)

// Tables shows a plan as two switchable tables
type Tables struct {
	cells       table.Model
	conversions table.Model
	active      View
	height      int
}

var cellColumns = []table.Column{
	{Title: "Cell", Width: 10},
	{Title: "Erlangs", Width: 8},
	{Title: "Chans", Width: 6},
	{Title: "Req", Width: 4},
	{Title: "Cur", Width: 4},
	{Title: "Δ", Width: 4},
	{Title: "Action", Width: 18},
}

var conversionColumns = []table.Column{
	{Title: "Cell", Width: 10},
	{Title: "TRX", Width: 5},
	{Title: "Slot", Width: 4},
	{Title: "BCCH", Width: 4},
	{Title: "From", Width: 7},
	{Title: "To", Width: 7},
	{Title: "Priority", Width: 10},
}

// CellRows renders results as table rows. Cells listed in packet show the
// packet-data action they actually ran.
func CellRows(results []models.DimensioningResult, packet map[string]bool) []table.Row {
	rows := make([]table.Row, len(results))
	for i, r := range results {
		action := r.Action
		if packet[r.CellID] {
			action = models.ActionAddPacketData
		}
		rows[i] = table.Row{
			r.CellID,
			fmt.Sprintf("%.3f", r.OfferedErlangs),
			strconv.Itoa(r.RequiredChannels),
			strconv.Itoa(r.RequiredSignallingGroups),
			strconv.Itoa(r.CurrentSignallingGroups),
			fmt.Sprintf("%+d", r.Delta),
			string(action),
		}
	}
	return rows
}

// ConversionRows renders conversion records as table rows
func ConversionRows(records []models.ConversionRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, c := range records {
		bcch := ""
		if c.MainBCCH {
			bcch = "yes"
		}
		rows[i] = table.Row{
			c.CellID,
			c.TRXID,
			strconv.Itoa(c.ChannelIndex),
			bcch,
			string(c.FromType),
			string(c.ToType),
			c.PacketPriority,
		}
	}
	return rows
}

// New builds both tables for a plan
func New(resp *models.PlanResponse, height int) *Tables {
	t := &Tables{height: height}
	t.cells = newTable(cellColumns, CellRows(resp.Results, resp.PacketDataCells()), height)
	t.conversions = newTable(conversionColumns, ConversionRows(resp.Conversions), height)
	t.conversions.Blur()
	return t
}

func newTable(cols []table.Column, rows []table.Row, height int) table.Model {
	m := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)
	m.SetStyles(styles.Table())
	return m
}

// tableHeight leaves room for the tab bar
func tableHeight(height int) int {
	return max(height-3, 3)
}

// Active returns the visible table
func (t *Tables) Active() View {
	return t.active
}

// SetHeight resizes both tables
func (t *Tables) SetHeight(height int) {
	t.height = height
	t.cells.SetHeight(tableHeight(height))
	t.conversions.SetHeight(tableHeight(height))
}

// Toggle switches between the cell and conversion tables
func (t *Tables) Toggle() {
	if t.active == ViewCells {
		t.active = ViewConversions
		t.cells.Blur()
		t.conversions.Focus()
		return
	}
	t.active = ViewCells
	t.conversions.Blur()
	t.cells.Focus()
}

// Update routes navigation keys to the visible table
func (t *Tables) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "tab" {
		t.Toggle()
		return nil
	}
	var cmd tea.Cmd
	if t.active == ViewCells {
		t.cells, cmd = t.cells.Update(msg)
	} else {
		t.conversions, cmd = t.conversions.Update(msg)
	}
	return cmd
}

// SelectedCell returns the cell under the cursor of the visible table
func (t *Tables) SelectedCell() string {
	row := t.cells.SelectedRow()
	if t.active == ViewConversions {
		row = t.conversions.SelectedRow()
	}
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

// View renders the tab bar and the visible table
func (t *Tables) View() string {
	tab := func(label string, on bool) string {
		style := lipgloss.NewStyle().Foreground(styles.Muted).Padding(0, 1)
		if on {
			style = style.Foreground(styles.Primary).Bold(true).Underline(true)
		}
		return style.Render(label)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top,
		tab(fmt.Sprintf("%s Cells (%d)", icons.Cell.String(), len(t.cells.Rows())), t.active == ViewCells),
		tab(fmt.Sprintf("%s Conversions (%d)", icons.Conversion.String(), len(t.conversions.Rows())), t.active == ViewConversions),
	)

	body := t.cells.View()
	if t.active == ViewConversions {
		if len(t.conversions.Rows()) == 0 {
			body = styles.Subtitle.Render("No channel conversions")
		} else {
			body = t.conversions.View()
		}
	}
	return bar + "\n\n" + body
}
