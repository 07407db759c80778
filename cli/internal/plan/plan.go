// ABOUTME: Shared dimensioning workflow for the CLI commands and the TUI
// ABOUTME: Loads exports, runs the pipeline locally or remotely, writes reports

package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ubaidashraf22/RF/backend/ingest"
	"github.com/ubaidashraf22/RF/backend/models"
	"github.com/ubaidashraf22/RF/backend/report"
	"github.com/ubaidashraf22/RF/backend/services"
	"github.com/ubaidashraf22/RF/cli/internal/client"
)

// ErrUnknownFormat is returned for report paths that are neither .xlsx nor .csv.
var ErrUnknownFormat = errors.New("report path must end in .xlsx or .csv")

// Inputs are the two operator exports after parsing.
type Inputs struct {
	TrafficPath  string
	ChannelsPath string
	Traffic      *ingest.TrafficData
	Channels     []models.PhysicalChannel
	ChannelRows  ingest.IngestionResult
}

// Params are the run parameters shared by the local and remote paths.
type Params struct {
	TopNDays      int
	Blocking      float64
	MaxChannels   int
	Workers       int
	ExcludedDates []models.Date
	PacketData    []models.Instruction
	FailFast      bool
}

// DefaultParams mirrors the backend defaults.
func DefaultParams() Params {
	opts := services.DefaultPipelineOptions()
	return Params{
		TopNDays:    opts.TopNDays,
		Blocking:    opts.BlockingProbability,
		MaxChannels: opts.MaxChannels,
		Workers:     opts.Workers,
	}
}

// Load reads the traffic CSV and the TRXCHAN export.
func Load(trafficPath, channelsPath string) (*Inputs, error) {
	in := &Inputs{TrafficPath: trafficPath, ChannelsPath: channelsPath}

	tf, err := os.Open(trafficPath)
	if err != nil {
		return nil, fmt.Errorf("opening traffic export: %w", err)
	}
	defer tf.Close()
	in.Traffic, err = ingest.ReadTraffic(tf, ingest.DefaultTrafficOptions())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(trafficPath), err)
	}

	cf, err := os.Open(channelsPath)
	if err != nil {
		return nil, fmt.Errorf("opening channel export: %w", err)
	}
	defer cf.Close()
	in.Channels, in.ChannelRows, err = ingest.ReadChannels(cf, ingest.DefaultChannelOptions())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(channelsPath), err)
	}

	slog.Debug("Exports loaded",
		"samples", len(in.Traffic.Samples),
		"dates", len(in.Traffic.Dates),
		"channels", len(in.Channels),
		"traffic_skipped", in.Traffic.Result.Skipped,
		"channel_skipped", in.ChannelRows.Skipped)
	return in, nil
}

// Warnings lists the rejected-row messages of both exports.
func (in *Inputs) Warnings() []string {
	var out []string
	if in.Traffic != nil {
		out = append(out, prefix(filepath.Base(in.TrafficPath), in.Traffic.Result.Errors)...)
	}
	return append(out, prefix(filepath.Base(in.ChannelsPath), in.ChannelRows.Errors)...)
}

func prefix(name string, msgs []string) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = name + ": " + m
	}
	return out
}

// Request builds the API body for a remote run.
func (in *Inputs) Request(p Params) *models.PlanRequest {
	return &models.PlanRequest{
		Samples:             in.Traffic.Samples,
		Signalling:          in.Traffic.Signalling,
		ExcludedDates:       p.ExcludedDates,
		Channels:            in.Channels,
		PacketData:          p.PacketData,
		TopNDays:            p.TopNDays,
		BlockingProbability: p.Blocking,
		FailFast:            p.FailFast,
	}
}

// RunLocal runs the pipeline in-process.
func RunLocal(ctx context.Context, in *Inputs, p Params) (*models.PlanResponse, error) {
	pipeline, err := services.NewPipeline(services.PipelineOptions{
		TopNDays:            p.TopNDays,
		BlockingProbability: p.Blocking,
		MaxChannels:         p.MaxChannels,
		Workers:             p.Workers,
	})
	if err != nil {
		return nil, err
	}

	out, err := pipeline.Run(ctx, services.PlanInput{
		Samples:       in.Traffic.Samples,
		Signalling:    in.Traffic.Signalling,
		ExcludedDates: models.NewDateSet(p.ExcludedDates...),
		Channels:      in.Channels,
		PacketData:    p.PacketData,
		FailFast:      p.FailFast,
	})
	if err != nil {
		return nil, err
	}
	resp := out.Response(time.Now().UTC())
	return &resp, nil
}

// RunRemote posts the same run to the backend.
func RunRemote(ctx context.Context, c *client.Client, in *Inputs, p Params) (*models.PlanResponse, error) {
	return c.Dimension(ctx, in.Request(p))
}

// IsCellError reports whether err aborted a fail-fast run, locally or remotely.
func IsCellError(err error) bool {
	var cellErr *models.CellError
	return errors.As(err, &cellErr) || client.IsCellError(err)
}

// WriteReport writes the conversion report, choosing the format by extension.
func WriteReport(path string, resp *models.PlanResponse) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".csv" {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if ext == ".csv" {
		err = report.WriteCSV(f, resp.Conversions)
	} else {
		err = report.WriteXLSX(f, resp.Conversions, resp.Results)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	slog.Info("Report written", "path", path, "conversions", len(resp.Conversions))
	return nil
}

// ParsePacketData parses CELL=K into an ADD_PACKET_DATA instruction.
func ParsePacketData(s string) (models.Instruction, error) {
	cell, raw, ok := strings.Cut(s, "=")
	cell = strings.TrimSpace(cell)
	if !ok || cell == "" {
		return models.Instruction{}, fmt.Errorf("packet data %q: expected CELL=COUNT", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return models.Instruction{}, fmt.Errorf("packet data %q: count must be a non-negative integer", s)
	}
	return models.Instruction{CellID: cell, Action: models.ActionAddPacketData, Magnitude: n}, nil
}

// ParseDates validates YYYY-MM-DD dates.
func ParseDates(raw []string) ([]models.Date, error) {
	out := make([]models.Date, 0, len(raw))
	for _, s := range raw {
		d, err := models.ParseDate(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Summary counts results per action.
type Summary struct {
	Cells          int
	Add            int
	Convert        int
	PacketData     int
	None           int
	Conversions    int
	CellErrors     int
	CurrentGroups  int
	RequiredGroups int
}

// Summarize reduces a plan to its headline counts. A cell that received
// packet data channels counts as PacketData whatever its computed action.
func Summarize(resp *models.PlanResponse) Summary {
	s := Summary{
		Cells:       len(resp.Results),
		Conversions: len(resp.Conversions),
		CellErrors:  len(resp.Errors),
	}
	packet := resp.PacketDataCells()
	for _, r := range resp.Results {
		s.CurrentGroups += r.CurrentSignallingGroups
		s.RequiredGroups += r.RequiredSignallingGroups
		switch {
		case packet[r.CellID]:
			s.PacketData++
		case r.Action == models.ActionAddSignalling:
			s.Add++
		case r.Action == models.ActionConvertToTraffic:
			s.Convert++
		default:
			s.None++
		}
	}
	return s
}
