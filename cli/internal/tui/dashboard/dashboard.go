// ABOUTME: Dashboard component summarising a dimensioning run
// ABOUTME: Shows group totals, action counts, and the offered load profile

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/cli/internal/plan"
	"github.com/ubaidashraf22/RF/cli/internal/tui/icons"
	"github.com/ubaidashraf22/RF/cli/internal/tui/styles"
	"github.com/ubaidashraf22/RF/cli/internal/tui/widgets"
)

// Dashboard displays the headline numbers of a plan
type Dashboard struct {
	resp   *models.PlanResponse
	source string
	width  int
	height int
}

// New creates a dashboard for a plan. source names where it came from.
func New(resp *models.PlanResponse, source string, width, height int) *Dashboard {
	return &Dashboard{
		resp:   resp,
		source: source,
		width:  width,
		height: height,
	}
}

// Update replaces the plan being shown
func (d *Dashboard) Update(resp *models.PlanResponse) {
	d.resp = resp
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.resp == nil {
		return styles.Panel.Width(d.width).Render("Running dimensioning...")
	}

	s := plan.Summarize(d.resp)
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Plan Summary"))
	sb.WriteString("\n")
	if d.source != "" {
		sb.WriteString(styles.Subtitle.Render(d.source))
		sb.WriteString("\n")
	}

	cfg := widgets.DefaultMetricBlockConfig()
	if d.width >= 2*cfg.Width+2 {
		cfg.Width = min((d.width-2)/2, 30)
	}
	groups := widgets.MetricBlock(icons.Signalling, "SDCCH8 groups",
		fmt.Sprintf("%d → %d", s.CurrentGroups, s.RequiredGroups),
		fmt.Sprintf("%+d groups", s.RequiredGroups-s.CurrentGroups), cfg)
	cells := widgets.CountBlock(icons.Cell, "Cells", s.Cells,
		fmt.Sprintf("%d conversions", s.Conversions), cfg)
	if d.width >= 2*cfg.Width+2 {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, groups, "  ", cells))
	} else {
		sb.WriteString(groups + "\n" + cells)
	}
	sb.WriteString("\n\n")

	sb.WriteString("Actions\n")
	for _, row := range []struct {
		action models.Action
		count  int
	}{
		{models.ActionAddSignalling, s.Add},
		{models.ActionConvertToTraffic, s.Convert},
		{models.ActionAddPacketData, s.PacketData},
		{models.ActionNone, s.None},
	} {
		fmt.Fprintf(&sb, "  %s %3d %s\n", widgets.ActionBadge(row.action), row.count,
			lipgloss.NewStyle().Foreground(styles.Muted).Render(string(row.action)))
	}
	sb.WriteString("\n")

	if s.CurrentGroups > 0 {
		pct := float64(s.RequiredGroups) / float64(s.CurrentGroups) * 100
		sb.WriteString("Required vs configured groups\n")
		sb.WriteString(styles.ProgressBar(pct, 20))
		fmt.Fprintf(&sb, " %.1f%%\n\n", pct)
	}

	if loads := offeredLoads(d.resp); len(loads) > 0 {
		busiest := busiestCell(d.resp)
		fmt.Fprintf(&sb, "%s Offered load per cell\n", icons.Chart.String())
		sb.WriteString("  " + widgets.Sparkline(loads, min(len(loads), max(d.width-4, 10))) + "\n")
		fmt.Fprintf(&sb, "  busiest %s at %.2f Erl\n\n", busiest.CellID, busiest.OfferedErlangs)
	}

	if s.CellErrors > 0 {
		sb.WriteString(widgets.StatusText(fmt.Sprintf("%d cell(s) failed", s.CellErrors), widgets.StatusCritical))
	} else {
		sb.WriteString(widgets.StatusText("All cells planned", widgets.StatusOK))
	}

	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Render(sb.String())
}

func offeredLoads(resp *models.PlanResponse) []float64 {
	out := make([]float64, len(resp.Results))
	for i, r := range resp.Results {
		out[i] = r.OfferedErlangs
	}
	return out
}

func busiestCell(resp *models.PlanResponse) models.DimensioningResult {
	var best models.DimensioningResult
	for i, r := range resp.Results {
		if i == 0 || r.OfferedErlangs > best.OfferedErlangs {
			best = r
		}
	}
	return best
}
