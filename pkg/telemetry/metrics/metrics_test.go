package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mathgen-hq/mathgen/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() config.MetricsConfig {
	return config.MetricsConfig{Namespace: "test"}
}

func TestCollector_NewCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(testConfig(), registry)

	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
	if !collector.Enabled() {
		t.Error("Collector should be enabled when Enabled is unset")
	}

	if NewCollector(testConfig(), nil).Registry() == nil {
		t.Error("NewCollector(nil registry) should create a registry")
	}
}

func TestCollector_RecordGeneration(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	tests := []struct {
		name     string
		language string
		status   string
		nodes    int
	}{
		{"python success", "python", "success", 5},
		{"go success", "go", "success", 1},
		{"parse failure", "python", "error", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector.RecordGeneration(tt.language, tt.status, time.Millisecond, tt.nodes)

			count := testutil.ToFloat64(collector.generationMetrics.generationsTotal.WithLabelValues(tt.language, tt.status))
			if count < 1 {
				t.Errorf("Expected generation counter >= 1, got %f", count)
			}
		})
	}
}

func TestCollector_StageMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordStage("parse", 50*time.Microsecond)
	collector.RecordStageError("parse", "UnmatchedBeginGroup")
	collector.RecordStageError("parse", "UnmatchedBeginGroup")

	if got := testutil.ToFloat64(collector.stageMetrics.errorsTotal.WithLabelValues("parse", "UnmatchedBeginGroup")); got != 2 {
		t.Errorf("Expected 2 stage errors, got %f", got)
	}
	if got := testutil.CollectAndCount(collector.stageMetrics.duration); got != 1 {
		t.Errorf("Expected 1 duration series, got %d", got)
	}
}

func TestCollector_HTTPMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordHTTPRequest("/v1/generate", http.MethodPost, http.StatusOK, 2*time.Millisecond)
	collector.RecordRateLimited("/v1/generate")

	if got := testutil.ToFloat64(collector.httpMetrics.requestsTotal.WithLabelValues("/v1/generate", "POST", "200")); got != 1 {
		t.Errorf("Expected 1 request, got %f", got)
	}
	if got := testutil.ToFloat64(collector.httpMetrics.rateLimited.WithLabelValues("/v1/generate")); got != 1 {
		t.Errorf("Expected 1 rate-limited request, got %f", got)
	}
}

func TestCollector_CacheMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordCacheHit("parse")
	collector.RecordCacheMiss("parse")
	collector.RecordCacheEviction("parse")
	collector.UpdateCacheSize("parse", 42)

	if got := testutil.ToFloat64(collector.cacheMetrics.hitsTotal.WithLabelValues("parse")); got != 1 {
		t.Errorf("Expected 1 hit, got %f", got)
	}
	if got := testutil.ToFloat64(collector.cacheMetrics.missesTotal.WithLabelValues("parse")); got != 1 {
		t.Errorf("Expected 1 miss, got %f", got)
	}
	if got := testutil.ToFloat64(collector.cacheMetrics.evictionsTotal.WithLabelValues("parse")); got != 1 {
		t.Errorf("Expected 1 eviction, got %f", got)
	}
	if got := testutil.ToFloat64(collector.cacheMetrics.entries.WithLabelValues("parse")); got != 42 {
		t.Errorf("Expected size=42, got %f", got)
	}
}

func TestCollector_HistoryMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordHistoryWrite(nil)
	collector.RecordHistoryWrite(errors.New("disk full"))
	collector.RecordHistoryPrune(3)
	collector.RecordHistoryPrune(0)

	if got := testutil.ToFloat64(collector.historyMetrics.writesTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("Expected 1 failed write, got %f", got)
	}
	if got := testutil.ToFloat64(collector.historyMetrics.prunedTotal); got != 3 {
		t.Errorf("Expected 3 pruned, got %f", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	disabled := false
	cfg := testConfig()
	cfg.Enabled = &disabled
	collector := NewCollector(cfg, nil)

	collector.RecordGeneration("python", "success", time.Millisecond, 3)
	collector.RecordStageError("lex", "UnknownCharacter")

	if got := testutil.ToFloat64(collector.generationMetrics.generationsTotal.WithLabelValues("python", "success")); got != 0 {
		t.Errorf("Expected no generations recorded when disabled, got %f", got)
	}

	var nilCollector *Collector
	nilCollector.RecordGeneration("python", "success", time.Millisecond, 3)
	if nilCollector.Enabled() {
		t.Error("nil collector should report disabled")
	}
}

func TestCollector_LanguageCardinality(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	for i := 0; i < DefaultMaxCardinality+5; i++ {
		collector.RecordGeneration(fmt.Sprintf("lang%d", i), "error", time.Millisecond, 0)
	}

	if got := testutil.ToFloat64(collector.generationMetrics.generationsTotal.WithLabelValues("other", "error")); got != 5 {
		t.Errorf("Expected 5 generations aggregated into other, got %f", got)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	limiter := NewCardinalityLimiter(3)

	for _, label := range []string{"a", "b", "c"} {
		if !limiter.Allow(label) {
			t.Errorf("Expected %q to be allowed", label)
		}
	}
	if !limiter.Allow("a") {
		t.Error("Expected existing label to be allowed")
	}
	if limiter.Allow("d") {
		t.Error("Expected new label to be rejected at the limit")
	}
	if limiter.Count() != 3 {
		t.Errorf("Expected count=3, got %d", limiter.Count())
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordGeneration("javascript", "success", time.Millisecond, 2)

	srv := httptest.NewServer(collector.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET metrics failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), `test_generations_total{language="javascript",status="success"} 1`) {
		t.Errorf("metrics output missing generation counter:\n%s", body)
	}
}
