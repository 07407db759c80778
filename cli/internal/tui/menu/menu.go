// ABOUTME: Run mode selection menu for TUI startup
// ABOUTME: Lets the user plan in-process or through the backend API

package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Mode is where a dimensioning run executes
type Mode int

const (
	ModeLocal Mode = iota
	ModeBackend
)

// String returns the string representation of a Mode
func (m Mode) String() string {
	switch m {
	case ModeLocal:
		return "local"
	case ModeBackend:
		return "backend"
	default:
		return "unknown"
	}
}

// ModeSelectedMsg is sent when the user picks a mode
type ModeSelectedMsg struct {
	Mode Mode
}

// CancelledMsg is sent when the user leaves the menu
type CancelledMsg struct{}

type option struct {
	label   string
	value   Mode
	enabled bool
}

// Menu is the mode selection screen
type Menu struct {
	options  []option
	selected Mode
	form     *huh.Form
}

// New creates the menu. The backend option is only offered when the
// health check reached the API.
func New(backendReachable bool, backendURL string) *Menu {
	m := &Menu{
		options: []option{
			{label: "Plan locally", value: ModeLocal, enabled: true},
			{label: "Plan via backend (" + backendURL + ")", value: ModeBackend, enabled: backendReachable},
		},
		selected: ModeLocal,
	}
	m.form = m.buildForm()
	return m
}

func (m *Menu) buildForm() *huh.Form {
	var opts []huh.Option[Mode]
	for _, o := range m.options {
		if o.enabled {
			opts = append(opts, huh.NewOption(o.label, o.value))
		}
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Mode]().
				Title("Where should the dimensioning run?").
				Options(opts...).
				Value(&m.selected),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

// Enabled reports whether a mode can be chosen
func (m *Menu) Enabled(mode Mode) bool {
	for _, o := range m.options {
		if o.value == mode {
			return o.enabled
		}
	}
	return false
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "q" || key.String() == "esc") {
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		mode := m.selected
		m.form = m.buildForm()
		return m, func() tea.Msg { return ModeSelectedMsg{Mode: mode} }
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelledMsg{} }
	}
	return m, cmd
}

// View implements tea.Model
func (m *Menu) View() string {
	return m.form.View()
}
