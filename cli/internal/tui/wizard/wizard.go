// ABOUTME: Dimensioning run wizard as a bubbletea model
// ABOUTME: Collects exports, parameters, and busy-day exclusions with huh forms

package wizard

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/cli/internal/plan"
	"github.com/ubaidashraf22/RF/cli/internal/tui/icons"
	"github.com/ubaidashraf22/RF/cli/internal/tui/recentfiles"
	"github.com/ubaidashraf22/RF/cli/internal/tui/styles"
)

// WizardCompleteMsg is sent when the wizard finishes successfully
type WizardCompleteMsg struct {
	Inputs *plan.Inputs
	Params plan.Params
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// exportsLoadedMsg carries the parsed exports back from the load command
type exportsLoadedMsg struct {
	inputs *plan.Inputs
	err    error
}

// Wizard manages the run setup flow as a bubbletea model
type Wizard struct {
	recent  *recentfiles.RecentFiles
	params  plan.Params
	inputs  *plan.Inputs
	form    *huh.Form
	step    int
	width   int
	loading bool
	err     error

	// Form field values (strings for huh)
	trafficPath  string
	channelsPath string
	topN         string
	blocking     string
	excluded     []models.Date
	packetData   string
}

// Step names for progress indicator
var stepNames = []string{"Exports", "Parameters", "Busy Days"}

// Common blocking targets for SDCCH
var blockingTargets = []float64{0.001, 0.002, 0.005, 0.01, 0.02}

// New creates a wizard seeded with the most recent exports and the
// given default parameters.
func New(recent *recentfiles.RecentFiles, defaults plan.Params) *Wizard {
	w := &Wizard{
		recent:       recent,
		params:       defaults,
		step:         1,
		trafficPath:  recent.Latest(recentfiles.KindTraffic),
		channelsPath: recent.Latest(recentfiles.KindTrxChan),
		topN:         strconv.Itoa(defaults.TopNDays),
		blocking:     formatBlocking(defaults.Blocking),
	}
	w.form = w.createExportsForm()
	return w
}

func formatBlocking(b float64) string {
	return strconv.FormatFloat(b, 'g', -1, 64)
}

func (w *Wizard) createExportsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Traffic export").
				Description("Hourly SDCCH traffic CSV (Tab completes recent files)").
				Placeholder("sdcch_traffic.csv").
				Suggestions(w.recent.List(recentfiles.KindTraffic)).
				Value(&w.trafficPath).
				Validate(validateFile),
			huh.NewInput().
				Title("TRXCHAN export").
				Description("Physical channel inventory listing").
				Placeholder("trxchan.txt").
				Suggestions(w.recent.List(recentfiles.KindTrxChan)).
				Value(&w.channelsPath).
				Validate(validateFile),
		).Title("Step 1: Exports").
			Description("Select the operator exports to dimension"),
	).WithTheme(createTheme())
}

func (w *Wizard) createParametersForm() *huh.Form {
	var options []huh.Option[string]
	seen := false
	for _, b := range blockingTargets {
		v := formatBlocking(b)
		seen = seen || v == w.blocking
		options = append(options, huh.NewOption(fmt.Sprintf("%g%% (%s)", b*100, v), v))
	}
	if !seen {
		options = append([]huh.Option[string]{huh.NewOption(w.blocking, w.blocking)}, options...)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Busiest days averaged").
				Description("Daily peaks per cell that form the representative load").
				CharLimit(3).
				Value(&w.topN).
				Validate(validatePositiveInt),
			huh.NewSelect[string]().
				Title("Blocking target").
				Description("Grade of service for SDCCH call setup").
				Options(options...).
				Value(&w.blocking),
		).Title("Step 2: Parameters").
			Description("Configure the load estimate and grade of service"),
	).WithTheme(createTheme())
}

func (w *Wizard) createBusyDaysForm() *huh.Form {
	var fields []huh.Field
	if dates := w.availableDates(); len(dates) > 0 {
		var options []huh.Option[models.Date]
		for _, d := range dates {
			options = append(options, huh.NewOption(dateLabel(d), d))
		}
		fields = append(fields, huh.NewMultiSelect[models.Date]().
			Title("Exclude dates").
			Description("Space toggles; excluded days never count as peaks").
			Options(options...).
			Height(min(len(options)+2, 10)).
			Value(&w.excluded))
	}
	fields = append(fields, huh.NewInput().
		Title("Packet data channels").
		Description("Optional CELL=COUNT list, comma separated").
		Placeholder("1001=2, 1002=1").
		Value(&w.packetData).
		Validate(validatePacketData))

	return huh.NewForm(
		huh.NewGroup(fields...).
			Title("Step 3: Busy Days").
			Description("Drop abnormal days and request packet data channels"),
	).WithTheme(createTheme())
}

func (w *Wizard) availableDates() []models.Date {
	if w.inputs == nil || w.inputs.Traffic == nil {
		return nil
	}
	return w.inputs.Traffic.Dates
}

func dateLabel(d models.Date) string {
	t, err := time.Parse(time.DateOnly, string(d))
	if err != nil {
		return string(d)
	}
	return fmt.Sprintf("%s %s", d, t.Format("Mon"))
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
		if w.loading {
			return w, nil
		}

	case exportsLoadedMsg:
		return w.handleLoaded(msg)
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted && !w.loading {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.loading = true
		w.err = nil
		return w, w.loadExports()

	case 2:
		if err := w.applyParameters(); err != nil {
			return w.retry(err, w.createParametersForm())
		}
		w.step = 3
		w.form = w.createBusyDaysForm()
		return w, w.form.Init()

	case 3:
		if err := w.applyBusyDays(); err != nil {
			return w.retry(err, w.createBusyDaysForm())
		}
		inputs, params := w.inputs, w.params
		return w, func() tea.Msg {
			return WizardCompleteMsg{Inputs: inputs, Params: params}
		}
	}

	return w, nil
}

func (w *Wizard) retry(err error, form *huh.Form) (tea.Model, tea.Cmd) {
	w.err = err
	w.form = form
	return w, w.form.Init()
}

// loadExports parses both exports off the UI goroutine
func (w *Wizard) loadExports() tea.Cmd {
	trafficPath, channelsPath := strings.TrimSpace(w.trafficPath), strings.TrimSpace(w.channelsPath)
	return func() tea.Msg {
		in, err := plan.Load(trafficPath, channelsPath)
		return exportsLoadedMsg{inputs: in, err: err}
	}
}

func (w *Wizard) handleLoaded(msg exportsLoadedMsg) (tea.Model, tea.Cmd) {
	w.loading = false
	if msg.err != nil {
		slog.Warn("Loading exports failed", "error", msg.err)
		return w.retry(msg.err, w.createExportsForm())
	}

	w.inputs = msg.inputs
	for kind, path := range map[string]string{
		recentfiles.KindTraffic: msg.inputs.TrafficPath,
		recentfiles.KindTrxChan: msg.inputs.ChannelsPath,
	} {
		if err := w.recent.Add(kind, path); err != nil {
			slog.Warn("Saving recent file failed", "kind", kind, "error", err)
		}
	}

	w.excluded = nil
	w.step = 2
	w.form = w.createParametersForm()
	return w, w.form.Init()
}

func (w *Wizard) applyParameters() error {
	n, err := strconv.Atoi(strings.TrimSpace(w.topN))
	if err != nil || n <= 0 {
		return errors.New("busiest days must be a positive number")
	}
	b, err := strconv.ParseFloat(w.blocking, 64)
	if err != nil || b <= 0 || b >= 1 {
		return fmt.Errorf("blocking target %q must be between 0 and 1", w.blocking)
	}
	w.params.TopNDays = n
	w.params.Blocking = b
	return nil
}

func (w *Wizard) applyBusyDays() error {
	packet, err := parsePacketList(w.packetData)
	if err != nil {
		return err
	}
	w.params.ExcludedDates = append([]models.Date(nil), w.excluded...)
	w.params.PacketData = packet
	return nil
}

// parsePacketList splits a comma or space separated CELL=COUNT list
func parsePacketList(s string) ([]models.Instruction, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == ';' })
	out := make([]models.Instruction, 0, len(fields))
	for _, f := range fields {
		inst, err := plan.ParsePacketData(f)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// Step returns the current step number
func (w *Wizard) Step() int {
	return w.step
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")

	if w.err != nil {
		sb.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + w.err.Error()))
		sb.WriteString("\n\n")
	}
	if w.loading {
		sb.WriteString(styles.Subtitle.Render("Loading exports..."))
		return sb.String()
	}

	sb.WriteString(w.form.View())
	return sb.String()
}

// renderProgress draws the boxed step indicator. The box is one column
// narrower than the wizard so it fits inside the app frame.
func (w *Wizard) renderProgress() string {
	width := max(w.width-1, 60)
	border := lipgloss.NewStyle().Foreground(styles.Muted)

	steps := make([]string, len(stepNames))
	for i, name := range stepNames {
		marker, style := "○", lipgloss.NewStyle().Foreground(styles.Muted)
		switch n := i + 1; {
		case n < w.step:
			marker = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
		case n == w.step:
			style = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
			marker = style.Render("●")
		default:
			marker = style.Render(marker)
		}
		steps[i] = marker + " " + style.Render(name)
	}
	stepsLine := strings.Join(steps, "    ")

	barWidth := width - 5
	filled := w.step * barWidth / len(stepNames)
	bar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", barWidth-filled))

	const title = "Progress"
	lines := []string{
		"┌─ " + lipgloss.NewStyle().Foreground(styles.Primary).Render(title) + " " +
			strings.Repeat("─", max(0, width-5-lipgloss.Width(title))) + "┐",
		"│ " + stepsLine + strings.Repeat(" ", max(0, width-4-lipgloss.Width(stepsLine))) + " │",
		"│  " + bar + " │",
		"└" + strings.Repeat("─", width-2) + "┘",
	}
	return border.Render(strings.Join(lines, "\n"))
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return errors.New("must be a positive number")
	}
	return nil
}

func validateFile(s string) error {
	path := strings.TrimSpace(s)
	if path == "" {
		return errors.New("path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return errors.New("file not found")
	}
	if info.IsDir() {
		return errors.New("path is a directory")
	}
	return nil
}

func validatePacketData(s string) error {
	_, err := parsePacketList(s)
	return err
}
