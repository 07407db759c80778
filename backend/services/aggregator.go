// ABOUTME: Reduces hourly SDCCH traffic to one representative load per cell
// ABOUTME: Daily busy-hour peaks, then the mean of each cell's top-N busiest days

package services

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/ubaidashraf22/RF/backend/models"
)

// DefaultTopNDays is the number of busiest days averaged per cell.
const DefaultTopNDays = 5

// TrafficAggregator computes CellLoadEstimates from raw samples.
type TrafficAggregator struct {
	topN int
}

// NewTrafficAggregator creates an aggregator averaging the topN busiest days.
func NewTrafficAggregator(topN int) (*TrafficAggregator, error) {
	if topN < 1 {
		return nil, fmt.Errorf("%w: got %d", models.ErrInvalidTopN, topN)
	}
	return &TrafficAggregator{topN: topN}, nil
}

// TopN returns the configured number of busy days.
func (a *TrafficAggregator) TopN() int {
	return a.topN
}

type cellDay struct {
	cell string
	date models.Date
}

// DailyPeaks returns the maximum sample per (cell, date), skipping excluded
// dates and samples without a finite value. Output is ordered by cell, then date.
func (a *TrafficAggregator) DailyPeaks(samples []models.TrafficSample, excluded models.DateSet) []models.DailyPeak {
	peaks := make(map[cellDay]float64)
	for _, s := range samples {
		if math.IsNaN(s.Erlangs) || math.IsInf(s.Erlangs, 0) {
			continue
		}
		d := s.Date()
		if excluded.Contains(d) {
			continue
		}
		key := cellDay{cell: s.CellID, date: d}
		if cur, ok := peaks[key]; !ok || s.Erlangs > cur {
			peaks[key] = s.Erlangs
		}
	}

	out := make([]models.DailyPeak, 0, len(peaks))
	for k, v := range peaks {
		out = append(out, models.DailyPeak{CellID: k.cell, Date: k.date, PeakErlangs: v})
	}
	slices.SortFunc(out, func(x, y models.DailyPeak) int {
		if c := strings.Compare(x.CellID, y.CellID); c != 0 {
			return c
		}
		return strings.Compare(string(x.Date), string(y.Date))
	})
	return out
}

// Aggregate returns one estimate per cell that still has data after
// exclusion. Cells with no remaining samples are absent from the result.
func (a *TrafficAggregator) Aggregate(samples []models.TrafficSample, excluded models.DateSet) []models.CellLoadEstimate {
	byCell := make(map[string][]float64)
	var cells []string
	for _, p := range a.DailyPeaks(samples, excluded) {
		if _, ok := byCell[p.CellID]; !ok {
			cells = append(cells, p.CellID)
		}
		byCell[p.CellID] = append(byCell[p.CellID], p.PeakErlangs)
	}

	estimates := make([]models.CellLoadEstimate, 0, len(cells))
	for _, cell := range cells {
		values := byCell[cell]
		sort.Sort(sort.Reverse(sort.Float64Slice(values)))
		n := min(a.topN, len(values))
		estimates = append(estimates, models.CellLoadEstimate{
			CellID:                cell,
			RepresentativeErlangs: stat.Mean(values[:n], nil),
			DaysUsed:              n,
		})
	}

	slog.Debug("Traffic aggregated", "samples", len(samples), "cells", len(estimates), "top_n", a.topN)
	return estimates
}
