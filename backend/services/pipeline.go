// ABOUTME: End-to-end SDCCH dimensioning pipeline over immutable inputs
// ABOUTME: Aggregate, dimension, then plan conversions per cell in parallel

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ubaidashraf22/RF/backend/models"
)

// DefaultPlanWorkers bounds per-cell planning parallelism.
const DefaultPlanWorkers = 8

// PipelineOptions configures a Pipeline.
type PipelineOptions struct {
	TopNDays            int
	BlockingProbability float64
	MaxChannels         int
	Workers             int
}

// DefaultPipelineOptions returns the standard dimensioning parameters.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		TopNDays:            DefaultTopNDays,
		BlockingProbability: DefaultBlockingProbability,
		MaxChannels:         DefaultMaxChannels,
		Workers:             DefaultPlanWorkers,
	}
}

// PlanInput is a fully materialized snapshot handed to the pipeline.
type PlanInput struct {
	Samples    []models.TrafficSample
	Signalling []models.SignallingConfig
	// Inventory, when non-nil, is used instead of deriving it from Signalling.
	Inventory     []models.CellInventory
	ExcludedDates models.DateSet
	Channels      []models.PhysicalChannel
	PacketData    []models.Instruction
	// FailFast aborts the run on the first cell error.
	FailFast bool
}

// PlanOutput is the result of one pipeline run.
type PlanOutput struct {
	Estimates   []models.CellLoadEstimate
	Inventory   []models.CellInventory
	Results     []models.DimensioningResult
	Channels    []models.PhysicalChannel
	Conversions []models.ConversionRecord
	CellErrors  []*models.CellError
}

// Pipeline wires the aggregator, engine, and planner together.
type Pipeline struct {
	aggregator *TrafficAggregator
	engine     *DimensioningEngine
	planner    *ChannelConversionPlanner
	workers    int
}

// NewPipeline validates opts and builds a pipeline.
func NewPipeline(opts PipelineOptions) (*Pipeline, error) {
	aggregator, err := NewTrafficAggregator(opts.TopNDays)
	if err != nil {
		return nil, err
	}
	engine, err := NewDimensioningEngine(NewCapacityCalculator(opts.MaxChannels), opts.BlockingProbability)
	if err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers < 1 {
		workers = DefaultPlanWorkers
	}
	return &Pipeline{
		aggregator: aggregator,
		engine:     engine,
		planner:    NewChannelConversionPlanner(),
		workers:    workers,
	}, nil
}

// Run executes the pipeline. Cell-level failures are collected in
// PlanOutput.CellErrors unless in.FailFast is set, in which case the first
// one is returned as the error. A failed cell's channels are left unplanned.
func (p *Pipeline) Run(ctx context.Context, in PlanInput) (*PlanOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &PlanOutput{}
	out.Estimates = p.aggregator.Aggregate(in.Samples, in.ExcludedDates)

	out.Inventory = in.Inventory
	if out.Inventory == nil {
		out.Inventory = InventoryFromConfig(in.Signalling, in.ExcludedDates)
	}

	results, err := p.engine.Dimension(out.Estimates, out.Inventory)
	out.Results = results
	out.CellErrors = CellErrors(err)
	if in.FailFast && len(out.CellErrors) > 0 {
		return nil, out.CellErrors[0]
	}

	instructions := p.instructions(results, in.PacketData)

	// Group channel positions by cell, keeping first-appearance order.
	var cells []string
	positions := make(map[string][]int)
	for i, ch := range in.Channels {
		if _, ok := positions[ch.CellID]; !ok {
			cells = append(cells, ch.CellID)
		}
		positions[ch.CellID] = append(positions[ch.CellID], i)
	}

	planned := make([][]models.PhysicalChannel, len(cells))
	planErrs := make([]error, len(cells))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for idx, cell := range cells {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			chans := make([]models.PhysicalChannel, len(positions[cell]))
			for j, pos := range positions[cell] {
				chans[j] = in.Channels[pos]
			}

			instr, ok := instructions[cell]
			if !ok {
				instr = models.Instruction{CellID: cell, Action: models.ActionNone}
			}

			result, _, err := p.planner.Plan(instr, chans)
			if err != nil {
				planErrs[idx] = err
				if in.FailFast {
					return err
				}
				planned[idx] = chans
				return nil
			}
			planned[idx] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("planning conversions: %w", err)
	}

	out.Channels = make([]models.PhysicalChannel, len(in.Channels))
	for idx, cell := range cells {
		for j, pos := range positions[cell] {
			out.Channels[pos] = planned[idx][j]
		}
		out.CellErrors = append(out.CellErrors, CellErrors(planErrs[idx])...)
	}
	out.Conversions = ConversionRecords(out.Channels)

	slog.Info("Dimensioning run complete",
		"cells", len(out.Results),
		"channels", len(out.Channels),
		"conversions", len(out.Conversions),
		"cell_errors", len(out.CellErrors),
	)
	return out, nil
}

// instructions maps each cell to the single action it takes this run.
// Explicit packet-data instructions replace the computed one.
func (p *Pipeline) instructions(results []models.DimensioningResult, packetData []models.Instruction) map[string]models.Instruction {
	byCell := make(map[string]models.Instruction, len(results)+len(packetData))
	for _, r := range results {
		if r.Action != models.ActionNone {
			byCell[r.CellID] = r.Instruction()
		}
	}
	for _, pd := range packetData {
		if pd.Magnitude <= 0 {
			continue
		}
		if prev, ok := byCell[pd.CellID]; ok {
			slog.Warn("Packet-data instruction replaces computed action",
				"cell", pd.CellID,
				"replaced_action", prev.Action,
				"replaced_magnitude", prev.Magnitude,
			)
		}
		byCell[pd.CellID] = models.Instruction{CellID: pd.CellID, Action: models.ActionAddPacketData, Magnitude: pd.Magnitude}
	}
	return byCell
}

// InputFromRequest maps an API request onto pipeline input. Channel
// protection flags and proposed types are derived again rather than trusted.
func InputFromRequest(req models.PlanRequest) PlanInput {
	channels := make([]models.PhysicalChannel, len(req.Channels))
	for i, ch := range req.Channels {
		channels[i] = models.NewPhysicalChannel(ch.CellID, ch.TRXID, ch.ChannelIndex,
			models.ParseChannelType(string(ch.CurrentType)), ch.MainBCCH)
	}
	return PlanInput{
		Samples:       req.Samples,
		Signalling:    req.Signalling,
		Inventory:     req.Inventory,
		ExcludedDates: models.NewDateSet(req.ExcludedDates...),
		Channels:      channels,
		PacketData:    req.PacketData,
		FailFast:      req.FailFast,
	}
}

// Response renders the output as an API response stamped with now.
func (o *PlanOutput) Response(now time.Time) models.PlanResponse {
	errs := make([]models.CellErrorInfo, len(o.CellErrors))
	for i, ce := range o.CellErrors {
		errs[i] = ce.Info()
	}
	return models.PlanResponse{
		Estimates:   nonNil(o.Estimates),
		Results:     nonNil(o.Results),
		Conversions: nonNil(o.Conversions),
		Errors:      errs,
		Metadata: models.Metadata{
			Timestamp:   now,
			Cells:       len(o.Results),
			Conversions: len(o.Conversions),
		},
	}
}

// nonNil keeps empty lists as [] rather than null in JSON.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
