// ABOUTME: Prometheus metrics for the dimensioning service
// ABOUTME: HTTP request instrumentation plus per-run planning counters

package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ubaidashraf22/RF/backend/models"
)

// Run outcomes recorded by RecordRun.
const (
	OutcomeOK         = "ok"
	OutcomeCellErrors = "cell_errors"
	OutcomeCached     = "cached"
	OutcomeFailed     = "failed"
)

// Collector bundles the service's Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	Runs        *prometheus.CounterVec
	CellErrors  *prometheus.CounterVec
	Conversions *prometheus.CounterVec
	LastCells   prometheus.Gauge
}

// New registers the metrics against reg, defaulting to the global registry
// when nil. Registering twice against the same registry reuses the
// existing collectors.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sdcch_http_requests_total",
		Help: "Handled HTTP requests by route template, method, and status code.",
	}, []string{"route", "method", "code"}), "sdcch_http_requests_total")
	if err != nil {
		return nil, err
	}
	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sdcch_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds by route template.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"route"}), "sdcch_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}
	runs, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sdcch_dimensioning_runs_total",
		Help: "Dimensioning runs by outcome.",
	}, []string{"outcome"}), "sdcch_dimensioning_runs_total")
	if err != nil {
		return nil, err
	}
	cellErrors, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sdcch_cell_errors_total",
		Help: "Cells that could not be dimensioned or planned, by stage.",
	}, []string{"stage"}), "sdcch_cell_errors_total")
	if err != nil {
		return nil, err
	}
	conversions, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sdcch_channel_conversions_total",
		Help: "Planned channel conversions by target channel type.",
	}, []string{"to_type"}), "sdcch_channel_conversions_total")
	if err != nil {
		return nil, err
	}
	cells, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sdcch_last_run_cells",
		Help: "Cells dimensioned by the most recent uncached run.",
	}), "sdcch_last_run_cells")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		HTTPRequests:  requests,
		HTTPDurations: durations,
		Runs:          runs,
		CellErrors:    cellErrors,
		Conversions:   conversions,
		LastCells:     cells,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency labeled by the matched
// mux route template, so path parameters do not explode cardinality.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		if c == nil {
			return
		}
		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		c.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.code)).Inc()
		c.HTTPDurations.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// RecordRun counts one dimensioning run. Cached replays only bump the run
// counter so planning counters reflect work actually done.
func (c *Collector) RecordRun(resp *models.PlanResponse, cached bool) {
	if c == nil || resp == nil {
		return
	}
	if cached {
		c.Runs.WithLabelValues(OutcomeCached).Inc()
		return
	}

	outcome := OutcomeOK
	if len(resp.Errors) > 0 {
		outcome = OutcomeCellErrors
	}
	c.Runs.WithLabelValues(outcome).Inc()
	c.LastCells.Set(float64(len(resp.Results)))
	for _, e := range resp.Errors {
		c.CellErrors.WithLabelValues(string(e.Stage)).Inc()
	}
	for _, r := range resp.Conversions {
		c.Conversions.WithLabelValues(string(r.ToType)).Inc()
	}
}

// RecordFailure counts a run that produced no plan.
func (c *Collector) RecordFailure() {
	if c == nil {
		return
	}
	c.Runs.WithLabelValues(OutcomeFailed).Inc()
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
