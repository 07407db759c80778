// ABOUTME: Tests for the erlang command
// ABOUTME: Verifies local and remote Erlang-B answers and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ubaidashraf22/RF/backend/handlers"
	"github.com/ubaidashraf22/RF/backend/models"
)

func TestRunErlang_RequiredChannels(t *testing.T) {
	opts := erlangOptions{load: 5, blocking: 0.001, channels: -1, maxChannels: 4096}

	var buf bytes.Buffer
	if exitCode := runErlang(context.Background(), opts, &buf); exitCode != exitOK {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "14 channel(s), 2 SDCCH8 group(s)") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestRunErlang_Blocking(t *testing.T) {
	opts := erlangOptions{load: 5, channels: 14, maxChannels: 4096}
	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	if exitCode := runErlang(context.Background(), opts, &buf); exitCode != exitOK {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	var resp models.BlockingResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if resp.Channels != 14 || resp.Blocking > 0.001 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestRunErlang_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts erlangOptions
	}{
		{"negative load", erlangOptions{load: -1, blocking: 0.001, channels: -1, maxChannels: 4096}},
		{"invalid blocking", erlangOptions{load: 1, blocking: 0, channels: -1, maxChannels: 4096}},
		{"overflow", erlangOptions{load: 50, blocking: 0.001, channels: -1, maxChannels: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if exitCode := runErlang(context.Background(), tt.opts, &buf); exitCode != exitError {
				t.Errorf("expected exit code 2, got %d", exitCode)
			}
		})
	}
}

func TestRunErlang_Remote(t *testing.T) {
	server := httptest.NewServer(handlers.NewHandler(nil, nil, nil).Router())
	defer server.Close()
	apiURL = server.URL
	defer func() { apiURL = "" }()

	opts := erlangOptions{load: 2.5, blocking: 0.001, channels: -1, remote: true}

	var buf bytes.Buffer
	if exitCode := runErlang(context.Background(), opts, &buf); exitCode != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "9 channel(s)") {
		t.Errorf("expected 9 channels for 2.5 Erl, got %q", buf.String())
	}
}
