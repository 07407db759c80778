// ABOUTME: Reader for hourly SDCCH traffic exports
// ABOUTME: Produces traffic samples and configured signalling counts per cell

package ingest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/ubaidashraf22/RF/backend/models"
)

// TrafficOptions describes the layout of a traffic export.
type TrafficOptions struct {
	SkipRows         int
	SkipFooter       int
	CellColumn       string
	TimeColumn       string
	TrafficColumn    string
	ConfiguredColumn string
}

// DefaultTrafficOptions matches the NPM level-1 SDCCH export.
func DefaultTrafficOptions() TrafficOptions {
	return TrafficOptions{
		SkipRows:         6,
		SkipFooter:       1,
		CellColumn:       "Cell CI",
		TimeColumn:       "Time",
		TrafficColumn:    "Total SDCCH Traffic (Erl)_South",
		ConfiguredColumn: "Initially Configured SDCCH_South",
	}
}

// TrafficData is everything read from one traffic export.
type TrafficData struct {
	Samples    []models.TrafficSample
	Signalling []models.SignallingConfig
	// Dates lists the distinct sample dates in ascending order.
	Dates  []models.Date
	Result IngestionResult
}

// Columns are renamed to these keys before decoding so the export's
// header names stay configurable.
type trafficRow struct {
	Cell       string `csv:"cell"`
	Time       string `csv:"time"`
	Traffic    string `csv:"traffic"`
	Configured string `csv:"configured"`
}

var timeLayouts = []string{
	time.DateTime,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	time.DateOnly,
}

// ParseTimestamp accepts the timestamp layouts seen in traffic exports.
// Times without a zone are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// ReadTraffic parses a traffic export. Rows with an unusable cell id or
// timestamp are skipped and reported in the result. A row whose traffic
// value is missing or not numeric yields no sample but still contributes
// its configured signalling count.
func ReadTraffic(r io.Reader, opts TrafficOptions) (*TrafficData, error) {
	body, err := trimLines(r, opts.SkipRows, opts.SkipFooter)
	if err != nil {
		return nil, err
	}
	cr, header, err := newReader(body)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(header, opts.CellColumn, opts.TimeColumn, opts.TrafficColumn); err != nil {
		return nil, err
	}

	keys := make([]string, len(header))
	for i, h := range header {
		switch h {
		case opts.CellColumn:
			keys[i] = "cell"
		case opts.TimeColumn:
			keys[i] = "time"
		case opts.TrafficColumn:
			keys[i] = "traffic"
		case opts.ConfiguredColumn:
			keys[i] = "configured"
		default:
			keys[i] = fmt.Sprintf("_col%d", i)
		}
	}

	dec, err := csvutil.NewDecoder(cr, keys...)
	if err != nil {
		return nil, fmt.Errorf("creating traffic decoder: %w", err)
	}

	out := &TrafficData{}
	dates := make(map[models.Date]struct{})
	for {
		var row trafficRow
		err := dec.Decode(&row)
		if err == io.EOF {
			break
		}
		out.Result.Total++
		ln := line(cr, opts.SkipRows)
		if errors.Is(err, csvutil.ErrFieldCount) {
			out.Result.reject(ln, "expected %d fields", len(keys))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("decoding traffic line %d: %w", ln, err)
		}

		cell := cleanLabel(row.Cell)
		if cell == "" {
			out.Result.reject(ln, "missing cell id")
			continue
		}
		ts, err := ParseTimestamp(row.Time)
		if err != nil {
			out.Result.reject(ln, "%v", err)
			continue
		}

		used := false
		if erl, ok := parseNumber(row.Traffic); ok {
			out.Samples = append(out.Samples, models.TrafficSample{CellID: cell, Timestamp: ts, Erlangs: erl})
			used = true
		}
		if n, ok := parseNumber(row.Configured); ok && n >= 0 {
			out.Signalling = append(out.Signalling, models.SignallingConfig{
				CellID:             cell,
				Timestamp:          ts,
				ConfiguredChannels: int(math.Round(n)),
			})
			used = true
		}
		if !used {
			out.Result.reject(ln, "no numeric traffic or configured count")
			continue
		}

		out.Result.Accepted++
		dates[models.DateOf(ts)] = struct{}{}
	}

	for d := range dates {
		out.Dates = append(out.Dates, d)
	}
	slices.Sort(out.Dates)

	slog.Debug("Traffic export read",
		"rows", out.Result.Total,
		"samples", len(out.Samples),
		"signalling", len(out.Signalling),
		"skipped", out.Result.Skipped,
		"dates", len(out.Dates),
	)
	return out, nil
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
