package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics tracks the HTTP API.
//
// Metrics:
//   - mathgen_http_requests_total: requests by route, method and status code
//   - mathgen_http_request_duration_seconds: latency by route
//   - mathgen_http_rate_limited_total: requests rejected by the rate limiter
type HTTPMetrics struct {
	requestsTotal *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	rateLimited   *prometheus.CounterVec
}

// NewHTTPMetrics creates and registers HTTP metrics with the provided registry.
func NewHTTPMetrics(namespace string, registry *prometheus.Registry) *HTTPMetrics {
	hm := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"route", "method", "code"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),

		rateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_rate_limited_total",
				Help:      "Total number of HTTP requests rejected by the rate limiter",
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(hm.requestsTotal, hm.duration, hm.rateLimited)
	return hm
}

// Record records a served request.
func (hm *HTTPMetrics) Record(route, method string, status int, duration time.Duration) {
	hm.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	hm.duration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordRateLimited records a rejected request.
func (hm *HTTPMetrics) RecordRateLimited(route string) {
	hm.rateLimited.WithLabelValues(route).Inc()
}
