package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubaidashraf22/RF/backend/models"
)

func TestNew_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := New(reg)
	require.NoError(t, err)
	second, err := New(reg)
	require.NoError(t, err)

	first.Runs.WithLabelValues(OutcomeOK).Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.Runs.WithLabelValues(OutcomeOK)))
}

func TestRecordRun(t *testing.T) {
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	resp := &models.PlanResponse{
		Results: []models.DimensioningResult{{CellID: "1001"}, {CellID: "1002"}},
		Conversions: []models.ConversionRecord{
			{CellID: "1001", ToType: models.ChannelSDCCH8},
			{CellID: "1002", ToType: models.ChannelTCHFR},
			{CellID: "1002", ToType: models.ChannelTCHFR},
		},
		Errors: []models.CellErrorInfo{{CellID: "1003", Stage: models.StageInventory}},
	}

	c.RecordRun(resp, false)
	c.RecordRun(resp, true)
	c.RecordFailure()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Runs.WithLabelValues(OutcomeCellErrors)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Runs.WithLabelValues(OutcomeCached)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Runs.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Conversions.WithLabelValues(string(models.ChannelTCHFR))))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CellErrors.WithLabelValues(models.StageInventory)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.LastCells))
}

func TestMiddleware_LabelsByRouteTemplate(t *testing.T) {
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	r := mux.NewRouter()
	r.Use(c.Middleware)
	r.HandleFunc("/api/v1/cells/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", c.Handler())

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/cells/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("/api/v1/cells/{id}", http.MethodGet, "418")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "sdcch_http_requests_total"))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.RecordRun(&models.PlanResponse{}, false)
	c.RecordFailure()

	rec := httptest.NewRecorder()
	c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
