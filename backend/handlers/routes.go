// ABOUTME: Declarative route table and router assembly for API endpoints
// ABOUTME: Registers routes on gorilla/mux behind logging, limits, CORS, and recovery

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/ubaidashraf22/RF/backend/middleware"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Dimensioning
		{Method: http.MethodPost, Path: "/api/v1/dimension", Handler: h.Dimension},

		// Erlang-B
		{Method: http.MethodGet, Path: "/api/v1/erlang/channels", Handler: h.RequiredChannels},
		{Method: http.MethodGet, Path: "/api/v1/erlang/blocking", Handler: h.Blocking},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}

// Router assembles the complete HTTP handler for the service.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(h.metrics.Middleware)
	for _, route := range h.Routes() {
		r.HandleFunc(route.Path, route.Handler).Methods(route.Method)
	}
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, "Not found", r.URL.Path, http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, "Method not allowed", r.Method, http.StatusMethodNotAllowed)
	})

	var limiter *middleware.RateLimiter
	if h.cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(h.cfg.RateLimitDefault, time.Minute)
	}
	stack := middleware.Chain(r,
		middleware.LogRequest,
		middleware.RateLimit(limiter, middleware.ClientIP),
	)

	allowed := h.cfg.CORSAllowedOrigins
	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOriginValidator(func(origin string) bool {
			return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
		}),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "X-Request-ID"}),
		gorillahandlers.ExposedHeaders([]string{"X-Request-ID"}),
	)

	recovery := gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(panicLogger{}),
		gorillahandlers.PrintRecoveryStack(false),
	)
	return recovery(cors(stack))
}

// panicLogger routes recovered panics into slog.
type panicLogger struct{}

func (panicLogger) Println(v ...interface{}) {
	slog.Error("Recovered from handler panic", "panic", fmt.Sprint(v...))
}
