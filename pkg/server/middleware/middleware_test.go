package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"mathgen-hq/mathgen/pkg/config"
	"mathgen-hq/mathgen/pkg/telemetry/logging"
	"mathgen-hq/mathgen/pkg/telemetry/metrics"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
})

func TestRequestID(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantReuse bool
	}{
		{name: "generates when missing", header: ""},
		{name: "reuses client id", header: "client-123", wantReuse: true},
		{name: "replaces oversized id", header: strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = logging.GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if got := w.Header().Get(RequestIDHeader); got != seen {
				t.Errorf("response header %q != context value %q", got, seen)
			}
			if tt.wantReuse {
				if seen != tt.header {
					t.Errorf("request ID = %q, want %q", seen, tt.header)
				}
				return
			}
			if _, err := uuid.Parse(seen); err != nil {
				t.Errorf("generated request ID %q is not a UUID: %v", seen, err)
			}
		})
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	handler := RequestID(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})))

	req := httptest.NewRequest(http.MethodPost, "/v1/generate", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entry["level"])
	}
	if entry["status"] != float64(400) || entry["path"] != "/v1/generate" || entry["request_id"] != "req-42" {
		t.Errorf("unexpected log entry: %v", entry)
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery(logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if resp.Error.Code != "Internal" || strings.Contains(resp.Error.Message, "boom") {
		t.Errorf("unexpected error body: %+v", resp.Error)
	}
}

func TestMetrics_RoutePattern(t *testing.T) {
	collector := metrics.NewCollector(config.MetricsConfig{}, nil)

	r := chi.NewRouter()
	r.Use(Metrics(collector))
	r.Get("/items/{id}", okHandler)

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP mathgen_http_requests_total Total number of HTTP requests served
# TYPE mathgen_http_requests_total counter
mathgen_http_requests_total{code="200",method="GET",route="/items/{id}"} 2
mathgen_http_requests_total{code="404",method="GET",route="unmatched"} 1
`
	if err := testutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected), "mathgen_http_requests_total"); err != nil {
		t.Error(err)
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 1, Burst: 2})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if ok, _ := rl.Allow("a"); !ok {
			t.Fatalf("request %d within burst was rejected", i+1)
		}
	}
	ok, retry := rl.Allow("a")
	if ok {
		t.Fatal("request over burst was allowed")
	}
	if retry <= 0 || retry > time.Second {
		t.Errorf("retry after = %v, want (0, 1s]", retry)
	}

	if ok, _ := rl.Allow("b"); !ok {
		t.Error("other clients must have their own bucket")
	}

	now = now.Add(time.Second)
	if ok, _ := rl.Allow("a"); !ok {
		t.Error("bucket should refill after a second")
	}
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 10, Burst: 10})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	rl.Allow("b")
	if rl.Clients() != 2 {
		t.Fatalf("Clients() = %d, want 2", rl.Clients())
	}

	now = now.Add(2 * DefaultClientTTL)
	rl.Allow("c")
	if rl.Clients() != 1 {
		t.Errorf("Clients() after sweep = %d, want 1", rl.Clients())
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	collector := metrics.NewCollector(config.MetricsConfig{}, nil)
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1}).WithMetrics(collector)
	handler := rl.Middleware(okHandler)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	if got := ClientKey(req); got != "10.0.0.1" {
		t.Errorf("ClientKey() = %q, want 10.0.0.1", got)
	}
	req.RemoteAddr = "pipe"
	if got := ClientKey(req); got != "pipe" {
		t.Errorf("ClientKey() = %q, want pipe", got)
	}
}
