// ABOUTME: Tests for the dimensioning API client
// ABOUTME: Uses httptest to mock backend responses and to run the real router

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ubaidashraf22/RF/backend/handlers"
	"github.com/ubaidashraf22/RF/backend/models"
)

func TestHealth_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("expected path /api/v1/health, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok", TopNDays: 5})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %s", resp.Status)
	}
	if resp.TopNDays != 5 {
		t.Errorf("expected top_n_days 5, got %d", resp.TopNDays)
	}
}

func TestHealth_ConnectionError(t *testing.T) {
	c := New("http://localhost:99999")
	_, err := c.Health(context.Background())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestHealth_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Health(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Message != "internal error" {
		t.Errorf("unexpected APIError %+v", apiErr)
	}
	if IsCellError(err) {
		t.Error("500 must not be reported as a cell error")
	}
}

func TestHealth_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.Health(ctx)
	if err == nil || err.Error() != "request canceled" {
		t.Errorf("expected request canceled, got %v", err)
	}
}

func TestHealth_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Health(ctx)
	if err == nil {
		t.Error("expected error for timed out context, got nil")
	}
}

func TestRequiredChannels_Query(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/erlang/channels" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("load"); got != "2.5" {
			t.Errorf("expected load 2.5, got %q", got)
		}
		if r.URL.Query().Has("blocking") {
			t.Error("expected zero blocking to be omitted")
		}
		json.NewEncoder(w).Encode(models.RequiredChannelsResponse{OfferedErlangs: 2.5, RequiredChannels: 9})
	}))
	defer server.Close()

	resp, err := New(server.URL).RequiredChannels(context.Background(), 2.5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.RequiredChannels != 9 {
		t.Errorf("expected 9 channels, got %d", resp.RequiredChannels)
	}
}

func TestDimension_CellErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Cell could not be dimensioned", Code: 422})
	}))
	defer server.Close()

	_, err := New(server.URL).Dimension(context.Background(), &models.PlanRequest{FailFast: true})
	if !IsCellError(err) {
		t.Errorf("expected cell error, got %v", err)
	}
}

func TestClient_AgainstRouter(t *testing.T) {
	server := httptest.NewServer(handlers.NewHandler(nil, nil, nil).Router())
	defer server.Close()
	c := New(server.URL)
	ctx := context.Background()

	health, err := c.Health(ctx)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if health.MaxChannels != 4096 {
		t.Errorf("expected max channels 4096, got %d", health.MaxChannels)
	}

	channels, err := c.RequiredChannels(ctx, 5, 0.001)
	if err != nil {
		t.Fatalf("required channels: %v", err)
	}
	if channels.RequiredChannels != 14 {
		t.Errorf("expected 14 channels for 5 Erl, got %d", channels.RequiredChannels)
	}

	blocking, err := c.Blocking(ctx, 5, 13)
	if err != nil {
		t.Fatalf("blocking: %v", err)
	}
	if blocking.Blocking <= 0.001 {
		t.Errorf("expected 13 channels to miss the 0.1%% target, got %v", blocking.Blocking)
	}

	day := func(d int) time.Time { return time.Date(2024, time.March, d, 18, 0, 0, 0, time.UTC) }
	plan, err := c.Dimension(ctx, &models.PlanRequest{
		Samples:    []models.TrafficSample{{CellID: "7", Timestamp: day(1), Erlangs: 0.2}},
		Signalling: []models.SignallingConfig{{CellID: "7", Timestamp: day(1), ConfiguredChannels: 8}},
	})
	if err != nil {
		t.Fatalf("dimension: %v", err)
	}
	if len(plan.Results) != 1 || plan.Results[0].Action != models.ActionNone {
		t.Errorf("expected one NONE result, got %+v", plan.Results)
	}
	if plan.Conversions == nil || len(plan.Conversions) != 0 {
		t.Errorf("expected empty conversions, got %v", plan.Conversions)
	}
}
