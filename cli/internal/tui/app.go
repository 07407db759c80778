// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/backend/report"
	"github.com/ubaidashraf22/RF/cli/internal/client"
	"github.com/ubaidashraf22/RF/cli/internal/plan"
	"github.com/ubaidashraf22/RF/cli/internal/tui/comparison"
	"github.com/ubaidashraf22/RF/cli/internal/tui/dashboard"
	"github.com/ubaidashraf22/RF/cli/internal/tui/debuglog"
	"github.com/ubaidashraf22/RF/cli/internal/tui/icons"
	"github.com/ubaidashraf22/RF/cli/internal/tui/menu"
	"github.com/ubaidashraf22/RF/cli/internal/tui/recentfiles"
	"github.com/ubaidashraf22/RF/cli/internal/tui/results"
	"github.com/ubaidashraf22/RF/cli/internal/tui/styles"
	"github.com/ubaidashraf22/RF/cli/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenWizard
	ScreenRunning
	ScreenResults
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
	healthTimeout    = 2 * time.Second
)

// healthCheckedMsg is sent when the backend health probe returns
type healthCheckedMsg struct {
	health *client.HealthResponse
	err    error
}

// planDoneMsg is sent when a dimensioning run finishes
type planDoneMsg struct {
	resp *models.PlanResponse
	err  error
}

// reportWrittenMsg is sent when the workbook has been saved
type reportWrittenMsg struct {
	path string
	err  error
}

// App is the root model for the TUI
type App struct {
	client     *client.Client
	screen     Screen
	width      int
	height     int
	err        error
	status     string
	mode       menu.Mode
	backend    *client.HealthResponse
	inputs     *plan.Inputs
	params     plan.Params
	resp       *models.PlanResponse
	lastUpdate time.Time
	reportPath string
	showMix    bool

	// Child models
	menu         *menu.Menu
	wizardScreen *wizard.Wizard
	dashboard    *dashboard.Dashboard
	compView     *comparison.Comparison
	tables       *results.Tables

	recentFiles *recentfiles.RecentFiles
}

// New creates a new TUI application
func New(apiClient *client.Client, recent *recentfiles.RecentFiles) *App {
	a := &App{
		client:      apiClient,
		screen:      ScreenMenu,
		params:      plan.DefaultParams(),
		recentFiles: recent,
		reportPath:  report.DefaultFileName,
	}
	a.menu = menu.New(false, a.backendURL())
	return a
}

func (a *App) backendURL() string {
	if a.client == nil {
		return ""
	}
	return a.client.BaseURL()
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.menu.Init(), a.checkHealth())
}

// checkHealth probes the backend so the menu can offer remote planning
func (a *App) checkHealth() tea.Cmd {
	if a.client == nil {
		return nil
	}
	c := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		h, err := c.Health(ctx)
		return healthCheckedMsg{health: h, err: err}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dashboard != nil {
			a.dashboard.SetSize(a.dashboardWidth(), a.contentHeight())
		}
		if a.compView != nil {
			a.compView.SetWidth(a.detailWidth())
		}
		if a.tables != nil {
			a.tables.SetHeight(a.contentHeight())
		}
		if a.wizardScreen != nil {
			return a.updateWizard(tea.WindowSizeMsg{Width: a.width - 1, Height: a.height})
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.screen {
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenWizard:
			return a.updateWizard(msg)
		case ScreenRunning:
			if msg.String() == "q" {
				return a, tea.Quit
			}
			return a, nil
		case ScreenResults:
			return a.updateResults(msg)
		}

	case healthCheckedMsg:
		if msg.err != nil {
			slog.Debug("Backend unavailable", "url", a.backendURL(), "error", msg.err)
			return a, nil
		}
		a.backend = msg.health
		a.menu = menu.New(true, a.backendURL())
		return a, a.menu.Init()

	case menu.ModeSelectedMsg:
		a.mode = msg.Mode
		return a, a.runWizard()

	case menu.CancelledMsg:
		return a, tea.Quit

	case wizard.WizardCompleteMsg:
		a.wizardScreen = nil
		a.inputs = msg.Inputs
		a.params = msg.Params
		return a, a.runPlan()

	case wizard.WizardCancelledMsg:
		a.wizardScreen = nil
		a.screen = ScreenMenu
		return a, a.menu.Init()

	case planDoneMsg:
		return a.handlePlanDone(msg)

	case reportWrittenMsg:
		if msg.err != nil {
			a.status = ""
			a.err = msg.err
			return a, nil
		}
		a.status = "Report saved to " + msg.path
		return a, nil

	default:
		// huh forms need their internal messages
		if a.screen == ScreenWizard && a.wizardScreen != nil {
			return a.updateWizard(msg)
		}
		if a.screen == ScreenMenu && a.menu != nil {
			return a.updateMenu(msg)
		}
	}

	return a, nil
}

func (a *App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.menu.Update(msg)
	a.menu = model.(*menu.Menu)
	return a, cmd
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wizardScreen == nil {
		return a, nil
	}
	model, cmd := a.wizardScreen.Update(msg)
	a.wizardScreen = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "w":
		if a.resp != nil {
			a.status = "Writing report..."
			return a, a.writeReport()
		}
	case "c":
		a.showMix = !a.showMix
		return a, nil
	case "n":
		return a, a.runWizard()
	case "b":
		a.reset()
		a.screen = ScreenMenu
		return a, a.menu.Init()
	default:
		if a.tables != nil && !a.showMix {
			return a, a.tables.Update(msg)
		}
	}
	return a, nil
}

func (a *App) reset() {
	a.resp = nil
	a.err = nil
	a.status = ""
	a.showMix = false
	a.dashboard = nil
	a.compView = nil
	a.tables = nil
}

func (a *App) handlePlanDone(msg planDoneMsg) (tea.Model, tea.Cmd) {
	a.screen = ScreenResults
	if msg.err != nil {
		slog.Error("Dimensioning failed", "mode", a.mode.String(), "error", msg.err)
		a.err = msg.err
		return a, nil
	}

	a.resp = msg.resp
	a.lastUpdate = time.Now()
	a.dashboard = dashboard.New(a.resp, a.sourceName(), a.dashboardWidth(), a.contentHeight())
	var channels []models.PhysicalChannel
	if a.inputs != nil {
		channels = a.inputs.Channels
	}
	a.compView = comparison.New(channels, a.resp, a.detailWidth())
	a.tables = results.New(a.resp, a.contentHeight())
	slog.Info("Dimensioning complete",
		"mode", a.mode.String(),
		"cells", len(a.resp.Results),
		"conversions", len(a.resp.Conversions),
		"cell_errors", len(a.resp.Errors))
	return a, nil
}

// runWizard transitions to the wizard screen
func (a *App) runWizard() tea.Cmd {
	a.reset()
	a.wizardScreen = wizard.New(a.recentFiles, a.params)
	a.wizardScreen.SetWidth(a.width - 1)
	a.screen = ScreenWizard
	return a.wizardScreen.Init()
}

// runPlan executes the pipeline in-process or through the backend
func (a *App) runPlan() tea.Cmd {
	a.screen = ScreenRunning
	in, p, mode, c := a.inputs, a.params, a.mode, a.client
	return func() tea.Msg {
		ctx := context.Background()
		var (
			resp *models.PlanResponse
			err  error
		)
		if mode == menu.ModeBackend && c != nil {
			resp, err = plan.RunRemote(ctx, c, in, p)
		} else {
			resp, err = plan.RunLocal(ctx, in, p)
		}
		return planDoneMsg{resp: resp, err: err}
	}
}

// writeReport saves the plan workbook in the working directory
func (a *App) writeReport() tea.Cmd {
	resp, path := a.resp, a.reportPath
	return func() tea.Msg {
		return reportWrittenMsg{path: path, err: plan.WriteReport(path, resp)}
	}
}

// sourceName describes the run for the header and dashboard
func (a *App) sourceName() string {
	if a.inputs == nil {
		return ""
	}
	where := "local"
	if a.mode == menu.ModeBackend {
		where = "backend"
	}
	return fmt.Sprintf("%s · %s", where, filepath.Base(a.inputs.TrafficPath))
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenWizard:
		content = a.viewWizard()
	case ScreenRunning:
		content = a.viewRunning()
	case ScreenResults:
		content = a.viewResults()
	default:
		content = a.viewMenu()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewMenu() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.App.String() + " SDCCH Dimensioning"))
	sb.WriteString("\n")
	if a.backend != nil {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s Backend %s: top %d days, GoS %g, %d cached plan(s)",
			icons.Backend.String(), a.backend.Status, a.backend.TopNDays, a.backend.BlockingProbability, a.backend.CachedPlans)))
	} else {
		sb.WriteString(styles.Subtitle.Render(icons.Backend.String() + " Backend not reachable; planning runs locally"))
	}
	sb.WriteString("\n")
	sb.WriteString(a.menu.View())
	return sb.String()
}

func (a *App) viewWizard() string {
	if a.wizardScreen != nil {
		return a.wizardScreen.View()
	}
	return ""
}

func (a *App) viewRunning() string {
	where := "locally"
	if a.mode == menu.ModeBackend {
		where = "on " + a.backendURL()
	}
	cells := 0
	if a.inputs != nil && a.inputs.Traffic != nil {
		cells = len(a.inputs.Traffic.Samples)
	}
	return styles.Panel.Width(max(a.width-panelPadding, 40)).Render(
		fmt.Sprintf("%s Dimensioning %s...\n\n%d traffic samples, top %d days, GoS %g",
			icons.Signalling.String(), where, cells, a.params.TopNDays, a.params.Blocking))
}

// viewResults renders the summary next to the tables or channel mix
func (a *App) viewResults() string {
	if a.err != nil {
		msg := "Error: " + a.err.Error()
		if plan.IsCellError(a.err) {
			msg = "Dimensioning stopped on a cell failure\n" + a.err.Error()
		}
		return styles.StatusCritical.Render(msg) + "\n" + styles.Help.Render("n New plan  b Back  q Quit")
	}

	leftPane := styles.Panel.Width(a.dashboardWidth()).Render("Loading...")
	if a.dashboard != nil {
		leftPane = styles.Panel.Width(a.dashboardWidth()).Render(a.dashboard.View())
	}

	right := ""
	switch {
	case a.showMix && a.compView != nil:
		right = a.compView.View()
	case a.tables != nil:
		right = a.tables.View()
	}
	if warnings := a.warnings(); warnings != "" {
		right += "\n\n" + warnings
	}
	if a.status != "" {
		right += "\n\n" + styles.StatusOK.Render(icons.Save.String()+" "+a.status)
	}
	rightPane := styles.ActivePanel.Width(a.detailWidth()).Render(right)

	if a.width < minTerminalWidth {
		return lipgloss.JoinVertical(lipgloss.Left, leftPane, rightPane)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// warnings summarises rejected export rows
func (a *App) warnings() string {
	if a.inputs == nil {
		return ""
	}
	w := a.inputs.Warnings()
	if len(w) == 0 {
		return ""
	}
	line := fmt.Sprintf("%s %d export row(s) skipped", icons.Warning.String(), len(w))
	return styles.StatusWarning.Render(line) + "\n" + lipgloss.NewStyle().Foreground(styles.Muted).Render(w[0])
}

// dashboardWidth calculates the width for the summary pane
func (a *App) dashboardWidth() int {
	if a.width < minTerminalWidth {
		return a.width - panelPadding
	}
	return (a.width - panelPadding) * 2 / 5
}

// detailWidth calculates the width for the table pane
func (a *App) detailWidth() int {
	if a.width < minTerminalWidth {
		return a.width - panelPadding
	}
	return a.width - a.dashboardWidth() - 2*panelPadding
}

// contentHeight calculates the height available inside a panel.
// Header, spacer, panel border and padding, spacer, and footer take 8 lines.
func (a *App) contentHeight() int {
	return a.height - 8
}

// frameWidth is one column short of the terminal to avoid wrapping,
// but never narrower than the minimum layout width.
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	left := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("SDCCH Dimensioning"))

	right := ""
	if name := a.sourceName(); name != "" && a.screen != ScreenMenu && a.screen != ScreenWizard {
		right = contextStyle.Render(name) + " "
	}

	fill := strings.Repeat("─", max(0, width-4-lipgloss.Width(left)-lipgloss.Width(right)))
	return borderStyle.Render("╭─" + left + fill + right + "─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenWizard:
		shortcuts = []string{"Tab Complete", "Enter Confirm", "Esc Cancel"}
	case ScreenRunning:
		shortcuts = []string{"q Quit"}
	case ScreenResults:
		shortcuts = []string{"Tab Table", "c Mix", "w Write", "n New", "b Back", "q Quit"}
	}

	styled := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		key, label, _ := strings.Cut(s, " ")
		styled[i] = keyStyle.Render(key) + " " + labelStyle.Render(label)
	}
	left := " " + strings.Join(styled, "  ")

	right := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenResults {
		right = statusStyle.Render("Planned "+formatTimeSince(a.lastUpdate)) + " "
	}

	fill := strings.Repeat("─", max(0, width-4-lipgloss.Width(left)-lipgloss.Width(right)))
	return borderStyle.Render("╰─" + left + fill + right + "─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	return a.renderHeader() + "\n" + content + "\n" + a.renderFooter()
}

// Run starts the TUI. Logging moves to the config directory while the
// terminal is in alternate screen mode.
func Run(apiClient *client.Client) error {
	configDir := recentfiles.DefaultConfigDir()
	closer, err := debuglog.Open(configDir)
	if err != nil {
		closer, _ = debuglog.Open("")
	}
	defer closer.Close()

	app := New(apiClient, recentfiles.New(configDir))
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
