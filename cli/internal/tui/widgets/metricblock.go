// ABOUTME: Compact metric block widget for dashboard displays
// ABOUTME: Icon-titled bordered panel holding a value and a detail line

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ubaidashraf22/RF/cli/internal/tui/icons"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       22,
		BorderColor: lipgloss.Color("#6B7280"),
		TitleColor:  lipgloss.Color("#0EA5E9"),
		ValueColor:  lipgloss.Color("#F9FAFB"),
	}
}

// MetricBlock renders a compact metric display block. The value may be
// pre-styled; padding is computed on display width.
func MetricBlock(icon icons.Icon, title, value, detail string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}
	inner := config.Width - 4

	titleStr := truncate(fmt.Sprintf("%s %s", icon.String(), title), inner)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)
	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	line := func(content string) string {
		pad := max(0, inner-lipgloss.Width(content))
		return borderStyle.Render("│  ") + content + strings.Repeat(" ", pad) + borderStyle.Render("│")
	}

	top := borderStyle.Render("┌─ ") + titleStyle.Render(titleStr) + " " +
		borderStyle.Render(strings.Repeat("─", max(0, inner-lipgloss.Width(titleStr)-1))+"┐")
	bottom := borderStyle.Render("└" + strings.Repeat("─", config.Width-2) + "┘")

	return strings.Join([]string{
		top,
		line(valueStyle.Render(value)),
		line(detailStyle.Render(truncate(detail, inner))),
		bottom,
	}, "\n")
}

// CountBlock renders a simple count metric
func CountBlock(icon icons.Icon, title string, count int, label string, config MetricBlockConfig) string {
	return MetricBlock(icon, title, fmt.Sprintf("%d", count), label, config)
}

// truncate shortens a string to maxLen runes with ellipsis if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:max(0, maxLen)])
	}
	return string(r[:maxLen-3]) + "..."
}
