package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mathgen-hq/mathgen/pkg/telemetry/metrics"
)

// Metrics records request count and latency labelled by the chi route
// pattern, so path parameters do not create new series. Unmatched routes
// are recorded as "unmatched".
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			collector.RecordHTTPRequest(RoutePattern(r), r.Method, rw.statusCode, time.Since(start))
		})
	}
}

// RoutePattern returns the matched chi route pattern, or "unmatched".
func RoutePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
