// ABOUTME: Channel mix view comparing current and proposed inventories
// ABOUTME: Counts timeslots per channel type before and after conversion

package comparison

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/cli/internal/tui/styles"
	"github.com/ubaidashraf22/RF/cli/internal/tui/widgets"
)

// Mix is the timeslot count of one channel type
type Mix struct {
	Type     models.ChannelType
	Current  int
	Proposed int
}

// Delta is the net change in timeslots
func (m Mix) Delta() int {
	return m.Proposed - m.Current
}

var displayOrder = []models.ChannelType{
	models.ChannelSDCCH8,
	models.ChannelTCHFR,
	models.ChannelTCHHR,
	models.ChannelPDCCH,
}

// ChannelMix counts the inventory per type, then applies the conversions.
// Types outside the planner's vocabulary are listed after the known ones.
func ChannelMix(channels []models.PhysicalChannel, conversions []models.ConversionRecord) []Mix {
	idx := map[models.ChannelType]int{}
	var out []Mix
	at := func(t models.ChannelType) *Mix {
		i, ok := idx[t]
		if !ok {
			i = len(out)
			idx[t] = i
			out = append(out, Mix{Type: t})
		}
		return &out[i]
	}

	for _, t := range displayOrder {
		at(t)
	}
	for _, c := range channels {
		m := at(c.CurrentType)
		m.Current++
		m.Proposed++
	}
	for _, c := range conversions {
		at(c.FromType).Proposed--
		at(c.ToType).Proposed++
	}
	return out
}

// Comparison displays the channel mix and cell failures of a plan
type Comparison struct {
	mix    []Mix
	errors []models.CellErrorInfo
	width  int
}

// New creates a comparison view
func New(channels []models.PhysicalChannel, resp *models.PlanResponse, width int) *Comparison {
	c := &Comparison{width: width}
	if resp != nil {
		c.mix = ChannelMix(channels, resp.Conversions)
		c.errors = resp.Errors
	}
	return c
}

// SetWidth updates the render width
func (c *Comparison) SetWidth(width int) {
	c.width = width
}

// View renders the comparison
func (c *Comparison) View() string {
	if c.mix == nil {
		return "No plan data"
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Channel Mix"))
	sb.WriteString("\n")

	head := lipgloss.NewStyle().Foreground(styles.Muted)
	sb.WriteString(head.Render(fmt.Sprintf("%-8s %8s %9s %7s", "Type", "Current", "Proposed", "Change")))
	sb.WriteString("\n")
	for _, m := range c.mix {
		if m.Current == 0 && m.Proposed == 0 {
			continue
		}
		// Growing SDCCH costs traffic capacity; growing anything else does not.
		change := widgets.DeltaText(m.Delta(), m.Type == models.ChannelSDCCH8)
		fmt.Fprintf(&sb, "%-8s %8d %9d %*s\n", m.Type, m.Current, m.Proposed,
			7+len(change)-lipgloss.Width(change), change)
	}

	if len(c.errors) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusCritical.Render("Cell failures"))
		sb.WriteString("\n")
		for _, e := range c.errors {
			fmt.Fprintf(&sb, "  %s %s (%s): %s\n", styles.StatusCritical.Render("X"), e.CellID, e.Stage, e.Error)
		}
	}

	return lipgloss.NewStyle().Width(c.width).Render(sb.String())
}
