// ABOUTME: Data models for hourly signalling traffic and its reductions
// ABOUTME: Samples, per-day peaks, and the representative load per cell

package models

import (
	"fmt"
	"time"
)

// Date is a calendar date in YYYY-MM-DD form.
type Date string

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(time.DateOnly))
}

// ParseDate validates s as a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// DateSet is a set of dates excluded from aggregation.
type DateSet map[Date]struct{}

// NewDateSet builds a DateSet from the given dates.
func NewDateSet(dates ...Date) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

// Contains reports whether d is in the set. A nil set contains nothing.
func (s DateSet) Contains(d Date) bool {
	_, ok := s[d]
	return ok
}

// TrafficSample is one observed hour of SDCCH traffic for a cell.
type TrafficSample struct {
	CellID    string    `json:"cell_id"`
	Timestamp time.Time `json:"timestamp"`
	Erlangs   float64   `json:"erlangs"`
}

// Date returns the calendar date the sample belongs to.
func (s TrafficSample) Date() Date {
	return DateOf(s.Timestamp)
}

// SignallingConfig is the configured SDCCH channel count reported alongside
// a traffic sample.
type SignallingConfig struct {
	CellID             string    `json:"cell_id"`
	Timestamp          time.Time `json:"timestamp"`
	ConfiguredChannels int       `json:"configured_channels"`
}

// DailyPeak is the busiest hour of one cell on one date.
type DailyPeak struct {
	CellID      string  `json:"cell_id"`
	Date        Date    `json:"date"`
	PeakErlangs float64 `json:"peak_erlangs"`
}

// CellLoadEstimate is the representative offered load for a cell: the mean
// of its top-N daily peaks.
type CellLoadEstimate struct {
	CellID                string  `json:"cell_id"`
	RepresentativeErlangs float64 `json:"representative_erlangs"`
	DaysUsed              int     `json:"days_used"`
}
