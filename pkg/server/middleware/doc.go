// Package middleware provides the HTTP middleware used by the mathgen API
// server.
//
// The server chains them in this order, outermost first:
//
//	Recovery -> RequestID -> tracing.HTTPMiddleware -> Logging -> Metrics -> RateLimiter
//
// Recovery turns panics into JSON 500 responses. RequestID reuses or
// generates an X-Request-ID and stores it in the logging context. Logging
// writes one structured line per request. Metrics records request counts
// and latencies by chi route pattern. RateLimiter applies a token bucket
// per client address.
package middleware
