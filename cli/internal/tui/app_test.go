// ABOUTME: Integration tests for TUI app
// ABOUTME: Tests component wiring and state transitions

package tui

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubaidashraf22/RF/backend/handlers"
	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/cli/internal/client"
	"github.com/ubaidashraf22/RF/cli/internal/plan"
	"github.com/ubaidashraf22/RF/cli/internal/tui/menu"
	"github.com/ubaidashraf22/RF/cli/internal/tui/recentfiles"
	"github.com/ubaidashraf22/RF/cli/internal/tui/wizard"
)

var (
	trafficFixture  = filepath.Join("..", "..", "cmd", "testdata", "traffic.csv")
	channelsFixture = filepath.Join("..", "..", "cmd", "testdata", "trxchan.txt")
)

func newApp(t *testing.T, c *client.Client) *App {
	t.Helper()
	app := New(c, recentfiles.New(t.TempDir()))
	app.width = 120
	app.height = 40
	return app
}

func loadInputs(t *testing.T) *plan.Inputs {
	t.Helper()
	in, err := plan.Load(trafficFixture, channelsFixture)
	require.NoError(t, err)
	return in
}

// completeRun drives a wizard result through a local plan run
func completeRun(t *testing.T, app *App) {
	t.Helper()
	params := plan.DefaultParams()
	params.TopNDays = 3

	_, cmd := app.Update(wizard.WizardCompleteMsg{Inputs: loadInputs(t), Params: params})
	require.Equal(t, ScreenRunning, app.screen)
	require.NotNil(t, cmd)

	done, ok := cmd().(planDoneMsg)
	require.True(t, ok)
	app.Update(done)
}

func TestAppInitialState(t *testing.T) {
	app := newApp(t, client.New("http://localhost:8080"))

	assert.Equal(t, ScreenMenu, app.screen)
	require.NotNil(t, app.menu)
	assert.False(t, app.menu.Enabled(menu.ModeBackend))
}

func TestScreenConstants(t *testing.T) {
	assert.Equal(t, Screen(0), ScreenMenu)
	assert.Equal(t, Screen(1), ScreenWizard)
	assert.Equal(t, Screen(2), ScreenRunning)
	assert.Equal(t, Screen(3), ScreenResults)
}

func TestAppHealthCheckEnablesBackend(t *testing.T) {
	server := httptest.NewServer(handlers.NewHandler(nil, nil, nil).Router())
	defer server.Close()

	app := newApp(t, client.New(server.URL))
	cmd := app.checkHealth()
	require.NotNil(t, cmd)

	msg, ok := cmd().(healthCheckedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	app.Update(msg)
	assert.True(t, app.menu.Enabled(menu.ModeBackend))
	assert.Contains(t, app.View(), "Backend ok")
}

func TestAppHealthCheckFailureKeepsLocal(t *testing.T) {
	app := newApp(t, client.New("http://localhost:8080"))
	app.Update(healthCheckedMsg{err: errors.New("connection refused")})

	assert.False(t, app.menu.Enabled(menu.ModeBackend))
	assert.Contains(t, app.View(), "Backend not reachable")
}

func TestAppModeSelectedStartsWizard(t *testing.T) {
	app := newApp(t, nil)
	app.Update(menu.ModeSelectedMsg{Mode: menu.ModeLocal})

	assert.Equal(t, ScreenWizard, app.screen)
	assert.NotNil(t, app.wizardScreen)

	app.Update(wizard.WizardCancelledMsg{})
	assert.Equal(t, ScreenMenu, app.screen)
	assert.Nil(t, app.wizardScreen)
}

func TestAppLocalRunShowsResults(t *testing.T) {
	app := newApp(t, nil)
	completeRun(t, app)

	require.Equal(t, ScreenResults, app.screen)
	require.NoError(t, app.err)
	require.NotNil(t, app.resp)
	assert.Len(t, app.resp.Results, 2)
	assert.NotNil(t, app.dashboard)
	assert.NotNil(t, app.tables)

	view := app.View()
	assert.Contains(t, view, "Plan Summary")
	assert.Contains(t, view, "local · traffic.csv")
	assert.Contains(t, view, "export row(s) skipped")

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	assert.Contains(t, app.View(), "Channel Mix")
}

func TestAppRemoteRun(t *testing.T) {
	server := httptest.NewServer(handlers.NewHandler(nil, nil, nil).Router())
	defer server.Close()

	app := newApp(t, client.New(server.URL))
	app.mode = menu.ModeBackend
	completeRun(t, app)

	require.NoError(t, app.err)
	assert.Equal(t, 3, len(app.resp.Conversions))
	assert.Contains(t, app.sourceName(), "backend")
}

func TestAppPlanFailure(t *testing.T) {
	app := newApp(t, nil)
	app.Update(planDoneMsg{err: &models.CellError{CellID: "1001", Stage: models.StageCapacity, Err: models.ErrCapacityOverflow}})

	assert.Equal(t, ScreenResults, app.screen)
	assert.Contains(t, app.View(), "cell failure")
}

func TestAppWritesReport(t *testing.T) {
	app := newApp(t, nil)
	completeRun(t, app)
	app.reportPath = filepath.Join(t.TempDir(), "plan.xlsx")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	require.NotNil(t, cmd)
	written, ok := cmd().(reportWrittenMsg)
	require.True(t, ok)
	require.NoError(t, written.err)

	app.Update(written)
	assert.Contains(t, app.status, "plan.xlsx")
	_, err := os.Stat(app.reportPath)
	assert.NoError(t, err)
}

func TestAppBackResetsToMenu(t *testing.T) {
	app := newApp(t, nil)
	completeRun(t, app)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	assert.Equal(t, ScreenMenu, app.screen)
	assert.Nil(t, app.resp)
	assert.Nil(t, app.tables)
}

func TestAppNewPlanKeepsParams(t *testing.T) {
	app := newApp(t, nil)
	completeRun(t, app)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.Equal(t, ScreenWizard, app.screen)
	assert.Equal(t, 3, app.params.TopNDays)
}

func TestAppViewReturnsContent(t *testing.T) {
	app := newApp(t, client.New("http://localhost:8080"))

	view := app.View()
	assert.Contains(t, view, "SDCCH Dimensioning")
	assert.Contains(t, view, "Select")

	app.screen = ScreenResults
	assert.Contains(t, app.View(), "Back")
}

func TestFormatTimeSince(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{time.Second, "just now"},
		{30 * time.Second, "30s ago"},
		{5 * time.Minute, "5m ago"},
		{2 * time.Hour, "2h ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatTimeSince(time.Now().Add(-tt.ago)))
	}
}
