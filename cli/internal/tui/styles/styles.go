// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Colors, panels, table styling, and per-action accents

package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/ubaidashraf22/RF/backend/models"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#0EA5E9") // Sky
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Surface   = lipgloss.Color("#374151") // Elevated surface background
	Packet    = lipgloss.Color("#A855F7") // Purple - packet data

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)
)

// ActionColor is the accent used for a dimensioning action.
func ActionColor(a models.Action) lipgloss.Color {
	switch a {
	case models.ActionAddSignalling:
		return Warning
	case models.ActionConvertToTraffic:
		return Secondary
	case models.ActionAddPacketData:
		return Packet
	default:
		return Muted
	}
}

// Table returns the bubbles table styles in the app palette.
func Table() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Muted).
		BorderBottom(true).
		Foreground(Primary).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(Text).
		Background(Surface).
		Bold(false)
	return s
}

// ProgressBar returns a styled bar for a ratio in percent. Values above
// 100 render full in the danger color.
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100.0 * float64(width))
	filled = min(max(filled, 0), width)

	color := Secondary
	if percent > 100 {
		color = Danger
	} else if percent >= 90 {
		color = Warning
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(repeat('█', filled))
	return bar + lipgloss.NewStyle().Foreground(Surface).Render(repeat('░', width-filled))
}

func repeat(r rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
