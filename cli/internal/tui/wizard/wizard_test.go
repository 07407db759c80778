// ABOUTME: Tests for the dimensioning run wizard
// ABOUTME: Validates step transitions, input parsing, and validation

package wizard

import (
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/cli/internal/plan"
	"github.com/ubaidashraf22/RF/cli/internal/tui/recentfiles"
)

var (
	trafficFixture  = filepath.Join("..", "..", "..", "cmd", "testdata", "traffic.csv")
	channelsFixture = filepath.Join("..", "..", "..", "cmd", "testdata", "trxchan.txt")
)

func newWizard(t *testing.T) (*Wizard, *recentfiles.RecentFiles) {
	t.Helper()
	recent := recentfiles.New(t.TempDir())
	return New(recent, plan.DefaultParams()), recent
}

func loadFixtures(t *testing.T, w *Wizard) {
	t.Helper()
	w.trafficPath, w.channelsPath = trafficFixture, channelsFixture
	_, cmd := w.advanceStep()
	require.True(t, w.loading)
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(exportsLoadedMsg)
	require.True(t, ok, "expected exportsLoadedMsg, got %T", msg)
	require.NoError(t, loaded.err)

	w.Update(loaded)
}

func TestWizardDefaults(t *testing.T) {
	w, _ := newWizard(t)

	assert.Equal(t, 1, w.Step())
	assert.Equal(t, strconv.Itoa(plan.DefaultParams().TopNDays), w.topN)
	assert.Equal(t, "0.001", w.blocking)
	assert.Empty(t, w.trafficPath)
}

func TestWizardPrefillsRecentExports(t *testing.T) {
	recent := recentfiles.New(t.TempDir())
	require.NoError(t, recent.Add(recentfiles.KindTraffic, trafficFixture))
	require.NoError(t, recent.Add(recentfiles.KindTrxChan, channelsFixture))

	w := New(recent, plan.DefaultParams())

	abs, err := filepath.Abs(trafficFixture)
	require.NoError(t, err)
	assert.Equal(t, abs, w.trafficPath)
	assert.NotEmpty(t, w.channelsPath)
}

func TestWizardLoadsExportsAndAdvances(t *testing.T) {
	w, recent := newWizard(t)
	loadFixtures(t, w)

	assert.False(t, w.loading)
	assert.Equal(t, 2, w.Step())
	require.NotNil(t, w.inputs)
	assert.Equal(t, []models.Date{"2024-01-01", "2024-01-02", "2024-01-03"}, w.availableDates())
	assert.NotEmpty(t, recent.Latest(recentfiles.KindTraffic))
	assert.NotEmpty(t, recent.Latest(recentfiles.KindTrxChan))
}

func TestWizardLoadFailureStaysOnExports(t *testing.T) {
	w, _ := newWizard(t)
	w.loading = true

	w.Update(exportsLoadedMsg{err: errors.New("reading traffic.csv: no header")})

	assert.Equal(t, 1, w.Step())
	assert.False(t, w.loading)
	assert.Contains(t, w.View(), "no header")
}

func TestWizardCompletesWithParams(t *testing.T) {
	w, _ := newWizard(t)
	loadFixtures(t, w)

	w.topN = "2"
	w.blocking = "0.01"
	_, _ = w.advanceStep()
	require.Equal(t, 3, w.Step())

	w.excluded = []models.Date{"2024-01-02"}
	w.packetData = "1001=2, 1002=1"
	_, cmd := w.advanceStep()
	require.NotNil(t, cmd)

	done, ok := cmd().(WizardCompleteMsg)
	require.True(t, ok)
	assert.Same(t, w.inputs, done.Inputs)
	assert.Equal(t, 2, done.Params.TopNDays)
	assert.InDelta(t, 0.01, done.Params.Blocking, 1e-12)
	assert.Equal(t, []models.Date{"2024-01-02"}, done.Params.ExcludedDates)
	assert.Equal(t, []models.Instruction{
		{CellID: "1001", Action: models.ActionAddPacketData, Magnitude: 2},
		{CellID: "1002", Action: models.ActionAddPacketData, Magnitude: 1},
	}, done.Params.PacketData)
}

func TestWizardRejectsInvalidParameters(t *testing.T) {
	w, _ := newWizard(t)
	loadFixtures(t, w)

	w.topN = "0"
	_, _ = w.advanceStep()

	assert.Equal(t, 2, w.Step())
	assert.Error(t, w.err)
}

func TestWizardEscCancels(t *testing.T) {
	w, _ := newWizard(t)
	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(WizardCancelledMsg)
	assert.True(t, ok)
}

func TestParsePacketList(t *testing.T) {
	got, err := parsePacketList(" 1001=2;1002=0 ")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 0, got[1].Magnitude)

	empty, err := parsePacketList("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = parsePacketList("1001")
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validatePositiveInt("7"))
	assert.Error(t, validatePositiveInt("-1"))
	assert.Error(t, validatePositiveInt("x"))

	assert.NoError(t, validateFile(trafficFixture))
	assert.Error(t, validateFile(""))
	assert.Error(t, validateFile(t.TempDir()))
	assert.Error(t, validateFile(filepath.Join(t.TempDir(), "missing.csv")))
}

func TestProgressShowsSteps(t *testing.T) {
	w, _ := newWizard(t)
	w.SetWidth(80)
	out := w.renderProgress()
	for _, name := range stepNames {
		assert.Contains(t, out, name)
	}
}
