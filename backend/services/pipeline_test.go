// ABOUTME: Tests for the end-to-end dimensioning pipeline
// ABOUTME: Exercises aggregation through conversion with a small two-cell network

package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubaidashraf22/RF/backend/models"
)

// networkInput returns cell A needing one more SDCCH8 group and cell B
// carrying two groups too many.
func networkInput() PlanInput {
	var samples []models.TrafficSample
	for day, peak := range map[int]float64{1: 10, 2: 9, 3: 8} {
		samples = append(samples, sample("A", day, 9, peak/2), sample("A", day, 18, peak))
		samples = append(samples, sample("B", day, 9, 0.2), sample("B", day, 18, 0.5))
	}

	var channels []models.PhysicalChannel
	channels = append(channels, trx("A", "1", true, bcch, sd, fr, fr, fr, fr, fr, fr)...)
	channels = append(channels, trx("A", "2", false, fr, fr, fr, fr, fr, fr, fr, fr)...)
	channels = append(channels, trx("B", "1", true, bcch, sd, sd, fr, fr, fr, fr, fr)...)
	channels = append(channels, trx("B", "2", false, sd, hr, hr, hr, hr, hr, hr, hr)...)

	return PlanInput{
		Samples: samples,
		Signalling: []models.SignallingConfig{
			config("A", 1, 10, 8),
			config("A", 3, 10, 16),
			config("B", 3, 10, 24),
		},
		Channels: channels,
	}
}

func newPipeline(t *testing.T, workers int) *Pipeline {
	t.Helper()
	opts := DefaultPipelineOptions()
	opts.Workers = workers
	p, err := NewPipeline(opts)
	require.NoError(t, err)
	return p
}

func TestPipeline_Run(t *testing.T) {
	in := networkInput()

	out, err := newPipeline(t, 4).Run(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, out.CellErrors)

	require.Len(t, out.Estimates, 2)
	assert.InDelta(t, 9.0, out.Estimates[0].RepresentativeErlangs, 1e-12)
	assert.InDelta(t, 0.5, out.Estimates[1].RepresentativeErlangs, 1e-12)

	require.Len(t, out.Results, 2)
	a, b := out.Results[0], out.Results[1]
	assert.Equal(t, 20, a.RequiredChannels)
	assert.Equal(t, 1, a.Delta)
	assert.Equal(t, models.ActionAddSignalling, a.Action)
	assert.Equal(t, 5, b.RequiredChannels)
	assert.Equal(t, -2, b.Delta)
	assert.Equal(t, models.ActionConvertToTraffic, b.Action)

	require.Len(t, out.Conversions, 3)
	assert.Equal(t, []string{"A/1/2", "B/1/1", "B/2/0"}, recordKeys(out.Conversions))
	assert.Equal(t, sd, out.Conversions[0].ToType)
	assert.Equal(t, fr, out.Conversions[1].ToType)
	assert.Equal(t, models.PacketPriorityEGPRS, out.Conversions[1].PacketPriority)

	assert.Len(t, out.Channels, len(in.Channels))
	for i := range in.Channels {
		assert.Equal(t, in.Channels[i].CellID, out.Channels[i].CellID)
		assert.Equal(t, in.Channels[i].TRXID, out.Channels[i].TRXID)
		assert.Equal(t, in.Channels[i].ChannelIndex, out.Channels[i].ChannelIndex)
		assert.Equal(t, in.Channels[i].CurrentType, out.Channels[i].CurrentType)
	}
}

func TestPipeline_DeterministicAcrossWorkers(t *testing.T) {
	serial, err := newPipeline(t, 1).Run(context.Background(), networkInput())
	require.NoError(t, err)
	parallel, err := newPipeline(t, 8).Run(context.Background(), networkInput())
	require.NoError(t, err)

	assert.Equal(t, serial.Results, parallel.Results)
	assert.Equal(t, serial.Channels, parallel.Channels)
	assert.Equal(t, serial.Conversions, parallel.Conversions)
}

func TestPipeline_MissingInventoryCollected(t *testing.T) {
	in := networkInput()
	in.Samples = append(in.Samples, sample("C", 2, 12, 1.0))
	in.Channels = append(in.Channels, trx("C", "1", true, bcch, sd, fr, fr)...)

	out, err := newPipeline(t, 4).Run(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, out.CellErrors, 1)
	assert.Equal(t, "C", out.CellErrors[0].CellID)
	assert.ErrorIs(t, out.CellErrors[0], models.ErrMissingInventory)
	assert.Len(t, out.Results, 2)
	assert.Len(t, out.Conversions, 3)
}

func TestPipeline_FailFast(t *testing.T) {
	in := networkInput()
	in.Samples = append(in.Samples, sample("C", 2, 12, 1.0))
	in.FailFast = true

	out, err := newPipeline(t, 4).Run(context.Background(), in)

	assert.Nil(t, out)
	assert.ErrorIs(t, err, models.ErrMissingInventory)
}

func TestPipeline_ExplicitInventoryWins(t *testing.T) {
	in := networkInput()
	in.Inventory = []models.CellInventory{
		{CellID: "A", CurrentSignallingGroups: 3},
		{CellID: "B", CurrentSignallingGroups: 1},
	}

	out, err := newPipeline(t, 2).Run(context.Background(), in)
	require.NoError(t, err)

	for _, r := range out.Results {
		assert.Equal(t, models.ActionNone, r.Action, "cell %s", r.CellID)
	}
	assert.Empty(t, out.Conversions)
}

func TestPipeline_PacketDataReplacesComputedAction(t *testing.T) {
	in := networkInput()
	in.PacketData = []models.Instruction{{CellID: "A", Magnitude: 2}}

	out, err := newPipeline(t, 2).Run(context.Background(), in)
	require.NoError(t, err)

	var aRecords []models.ConversionRecord
	for _, r := range out.Conversions {
		if r.CellID == "A" {
			aRecords = append(aRecords, r)
		}
	}
	require.Len(t, aRecords, 2)
	assert.Equal(t, []string{"A/2/6", "A/2/7"}, recordKeys(aRecords))
	for _, r := range aRecords {
		assert.Equal(t, pd, r.ToType)
	}
}

func TestPipeline_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPipeline(t, 2).Run(ctx, networkInput())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewPipeline_InvalidOptions(t *testing.T) {
	opts := DefaultPipelineOptions()
	opts.TopNDays = 0
	_, err := NewPipeline(opts)
	assert.ErrorIs(t, err, models.ErrInvalidTopN)

	opts = DefaultPipelineOptions()
	opts.BlockingProbability = 1
	_, err = NewPipeline(opts)
	assert.ErrorIs(t, err, models.ErrInvalidBlocking)
}

func recordKeys(records []models.ConversionRecord) []string {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = fmt.Sprintf("%s/%s/%d", r.CellID, r.TRXID, r.ChannelIndex)
	}
	return keys
}

func TestInputFromRequest_RederivesProtection(t *testing.T) {
	req := models.PlanRequest{
		Channels: []models.PhysicalChannel{
			{CellID: "A", TRXID: "1", ChannelIndex: 6, CurrentType: " tchfr", MainBCCH: true},
			{CellID: "A", TRXID: "2", ChannelIndex: 6, CurrentType: fr, ProtectedIndex: true, ProposedType: sd},
		},
		ExcludedDates: []models.Date{"2024-01-02"},
	}

	in := InputFromRequest(req)

	require.Len(t, in.Channels, 2)
	assert.True(t, in.Channels[0].ProtectedIndex)
	assert.Equal(t, fr, in.Channels[0].CurrentType)
	assert.False(t, in.Channels[1].ProtectedIndex)
	assert.Equal(t, fr, in.Channels[1].ProposedType)
	assert.True(t, in.ExcludedDates.Contains("2024-01-02"))
}

func TestPlanOutput_Response(t *testing.T) {
	out, err := newPipeline(t, 2).Run(context.Background(), networkInput())
	require.NoError(t, err)

	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	resp := out.Response(now)

	assert.Equal(t, now, resp.Metadata.Timestamp)
	assert.False(t, resp.Metadata.Cached)
	assert.Equal(t, 2, resp.Metadata.Cells)
	assert.Equal(t, 3, resp.Metadata.Conversions)
	assert.NotNil(t, resp.Errors)
	assert.Empty(t, resp.Errors)

	empty := (&PlanOutput{}).Response(now)
	assert.NotNil(t, empty.Results)
	assert.NotNil(t, empty.Conversions)
}
