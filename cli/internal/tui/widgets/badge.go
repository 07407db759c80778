// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Colored inline badges for statuses and dimensioning actions

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusNeutral
)

var levelColors = map[StatusLevel]lipgloss.Color{
	StatusOK:       lipgloss.Color("#10B981"),
	StatusWarning:  lipgloss.Color("#F59E0B"),
	StatusCritical: lipgloss.Color("#EF4444"),
	StatusNeutral:  lipgloss.Color("#6B7280"),
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	fg := lipgloss.Color("#FFFFFF")
	if level == StatusWarning {
		fg = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().
		Background(levelColors[level]).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// ActionLevel maps a dimensioning action to a status level. Growing
// signalling is the only action that signals a shortfall.
func ActionLevel(a models.Action) StatusLevel {
	switch a {
	case models.ActionAddSignalling:
		return StatusWarning
	case models.ActionConvertToTraffic, models.ActionAddPacketData:
		return StatusOK
	default:
		return StatusNeutral
	}
}

// ActionBadge renders a short badge for a cell's action.
func ActionBadge(a models.Action) string {
	label := "HOLD"
	switch a {
	case models.ActionAddSignalling:
		label = "ADD"
	case models.ActionConvertToTraffic:
		label = "FREE"
	case models.ActionAddPacketData:
		label = "PDCH"
	}
	return Badge(label, ActionLevel(a))
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	style := lipgloss.NewStyle().Foreground(levelColors[level])
	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	default:
		return style.Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	textStyle := lipgloss.NewStyle().Foreground(levelColors[level])
	return fmt.Sprintf("%s %s", StatusIcon(level), textStyle.Render(text))
}

// DeltaText renders a signed count, colored by whether growth is a cost.
func DeltaText(delta int, growthIsCost bool) string {
	level := StatusNeutral
	switch {
	case delta > 0 && growthIsCost, delta < 0 && !growthIsCost:
		level = StatusWarning
	case delta != 0:
		level = StatusOK
	}
	return lipgloss.NewStyle().Foreground(levelColors[level]).Bold(delta != 0).Render(fmt.Sprintf("%+d", delta))
}
