// ABOUTME: Middleware chaining utility for composing HTTP middleware
// ABOUTME: Applies middleware in declaration order (first is outermost)

package middleware

import "net/http"

// Middleware wraps a handler. gorilla/mux MiddlewareFunc has the same shape.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware to a handler in order.
// The first middleware in the list is the outermost (executes first).
// Example: Chain(handler, logging, limit) applies as: logging(limit(handler))
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			h = middlewares[i](h)
		}
	}
	return h
}
