// ABOUTME: Tests for request logging middleware
// ABOUTME: Verifies request IDs and path sanitization against log injection

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"newline injection", "/api/v1/dimension\nlevel=ERROR msg=forged", "/api/v1/dimensionlevel=ERROR msg=forged"},
		{"CRLF", "/api/test\r\ninjected", "/api/testinjected"},
		{"null byte", "/api/test\x00value", "/api/testvalue"},
		{"escape sequence", "/api/test\x1b[31mred", "/api/test[31mred"},
		{"DEL", "/api/test\x7fvalue", "/api/testvalue"},
		{"normal path", "/api/v1/erlang/channels", "/api/v1/erlang/channels"},
		{"encoded chars", "/api/v1/cells%2F1001", "/api/v1/cells%2F1001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizePath(tt.input); got != tt.want {
				t.Errorf("sanitizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogRequest_SetsRequestID(t *testing.T) {
	var seen string
	handler := LogRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/test", nil))

	requestID := rec.Header().Get("X-Request-ID")
	if _, err := uuid.Parse(requestID); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID: %v", requestID, err)
	}
	if seen != requestID {
		t.Errorf("Context request ID = %q, want %q", seen, requestID)
	}
}

func TestLogRequest_KeepsIncomingRequestID(t *testing.T) {
	handler := LogRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.Header.Set("X-Request-ID", id)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid\nforged")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got == "not-a-uuid\nforged" {
		t.Error("Expected a malformed incoming ID to be replaced")
	}
}

func TestLogRequest_CapturesStatusCode(t *testing.T) {
	handler := LogRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/test", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), nil, mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"outer", "inner", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}
