// ABOUTME: HTTP client for the SDCCH dimensioning API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ubaidashraf22/RF/backend/models"
)

// Client is the API client for the dimensioning backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// BaseURL returns the backend URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status              string  `json:"status"`
	TopNDays            int     `json:"top_n_days"`
	BlockingProbability float64 `json:"blocking_probability"`
	MaxChannels         int     `json:"max_channels"`
	CachedPlans         int     `json:"cached_plans"`
}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("backend error: %s: %s", e.Message, e.Details)
	}
	return fmt.Sprintf("backend error: %s", e.Message)
}

// IsCellError reports whether err is the backend rejecting a fail-fast
// run because a cell could not be dimensioned.
func IsCellError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Dimension calls POST /api/v1/dimension
func (c *Client) Dimension(ctx context.Context, req *models.PlanRequest) (*models.PlanResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var plan models.PlanResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/dimension", bytes.NewReader(body), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// RequiredChannels calls GET /api/v1/erlang/channels. A zero blocking
// uses the server default.
func (c *Client) RequiredChannels(ctx context.Context, load, blocking float64) (*models.RequiredChannelsResponse, error) {
	q := url.Values{}
	q.Set("load", strconv.FormatFloat(load, 'f', -1, 64))
	if blocking != 0 {
		q.Set("blocking", strconv.FormatFloat(blocking, 'f', -1, 64))
	}

	var resp models.RequiredChannelsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/erlang/channels?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Blocking calls GET /api/v1/erlang/blocking
func (c *Client) Blocking(ctx context.Context, load float64, channels int) (*models.BlockingResponse, error) {
	q := url.Values{}
	q.Set("load", strconv.FormatFloat(load, 'f', -1, 64))
	q.Set("channels", strconv.Itoa(channels))

	var resp models.BlockingResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/erlang/blocking?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error, Details: errResp.Details}
}
