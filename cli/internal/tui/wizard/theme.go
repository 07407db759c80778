// ABOUTME: huh form theme for the planning wizard
// ABOUTME: Sky focus accents over muted gray blurred fields

package wizard

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ubaidashraf22/RF/cli/internal/tui/styles"
)

// createTheme returns a custom huh theme in the app palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := styles.Primary
	accentLight := lipgloss.Color("#38BDF8")
	button := lipgloss.Color("#0284C7")
	gray := lipgloss.Color("#9CA3AF")
	text := lipgloss.Color("#E5E7EB")
	red := styles.Danger
	slate := styles.Surface

	// Group styles (section headers)
	t.Group.Title = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	// Focused field styles
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(accent)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(accentLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	// Select field styles
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(accent).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(text)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)
	t.Focused.NextIndicator = lipgloss.NewStyle().
		Foreground(accent).
		MarginLeft(1).
		SetString("→")
	t.Focused.PrevIndicator = lipgloss.NewStyle().
		Foreground(accent).
		MarginRight(1).
		SetString("←")

	// Text input styles
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(accent)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(accent)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(text)

	// Button styles
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(button).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	// Blurred fields reuse focused styles with muted colors
	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(gray).
		SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

