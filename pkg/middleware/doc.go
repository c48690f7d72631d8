// Package middleware provides HTTP middleware for the vdom server.
//
// This package includes:
//   - OpenTelemetry request tracing
//   - Prometheus request metrics
//   - Structured request logging with log/slog
//
// All middleware has the func(http.Handler) http.Handler shape and plugs
// into a chi router:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Logger(logger))
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("vdom")))
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//
// Route labels and span names use the chi route pattern ("/render"), not
// the raw path, so label cardinality stays bounded. Requests that match no
// route are labeled "unmatched".
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// unmatchedRoute labels requests no route handled.
const unmatchedRoute = "unmatched"

// routePattern returns the chi route pattern of a served request.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}
