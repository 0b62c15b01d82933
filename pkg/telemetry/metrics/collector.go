package metrics

import (
	"sync"
	"time"

	"mathgen-hq/mathgen/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultMaxCardinality bounds the number of distinct language labels.
const DefaultMaxCardinality = 64

// Collector is the main orchestrator for all Prometheus metrics in mathgen.
// It manages metric registration and provides a unified interface for
// recording metrics across the generator, server, watcher and history store.
//
// A Collector built from a disabled configuration accepts every call and
// records nothing. A nil *Collector behaves the same way.
type Collector struct {
	enabled  bool
	registry *prometheus.Registry

	generationMetrics *GenerationMetrics
	stageMetrics      *StageMetrics
	httpMetrics       *HTTPMetrics
	cacheMetrics      *CacheMetrics
	historyMetrics    *HistoryMetrics

	// Cardinality tracking for user-supplied language labels
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	collector := metrics.NewCollector(config.MetricsConfig{Namespace: "mathgen"}, nil)
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		enabled:            cfg.IsEnabled(),
		registry:           registry,
		generationMetrics:  NewGenerationMetrics(cfg.Namespace, registry),
		stageMetrics:       NewStageMetrics(cfg.Namespace, registry),
		httpMetrics:        NewHTTPMetrics(cfg.Namespace, registry),
		cacheMetrics:       NewCacheMetrics(cfg.Namespace, registry),
		historyMetrics:     NewHistoryMetrics(cfg.Namespace, registry),
		cardinalityLimiter: NewCardinalityLimiter(DefaultMaxCardinality),
	}
}

func (c *Collector) active() bool {
	return c != nil && c.enabled
}

// language bounds the label cardinality of user-supplied language names.
func (c *Collector) language(name string) string {
	if !c.cardinalityLimiter.Allow(name) {
		return "other"
	}
	return name
}

// RecordGeneration records metrics for a completed generation.
//
// Parameters:
//   - language: target language as requested
//   - status: "success" or "error"
//   - duration: total time from source text to printed code
//   - nodes: number of AST nodes, zero when parsing failed
func (c *Collector) RecordGeneration(language, status string, duration time.Duration, nodes int) {
	if !c.active() {
		return
	}
	c.generationMetrics.Record(c.language(language), status, duration, nodes)
}

// RecordStage records the duration of one pipeline stage
// ("lex", "parse", "validate", "print").
func (c *Collector) RecordStage(stage string, duration time.Duration) {
	if !c.active() {
		return
	}
	c.stageMetrics.RecordDuration(stage, duration)
}

// RecordStageError records a failure in a pipeline stage with its error code.
func (c *Collector) RecordStageError(stage, code string) {
	if !c.active() {
		return
	}
	c.stageMetrics.RecordError(stage, code)
}

// RecordHTTPRequest records a served HTTP request.
func (c *Collector) RecordHTTPRequest(route, method string, status int, duration time.Duration) {
	if !c.active() {
		return
	}
	c.httpMetrics.Record(route, method, status, duration)
}

// RecordRateLimited records a request rejected by the rate limiter.
func (c *Collector) RecordRateLimited(route string) {
	if !c.active() {
		return
	}
	c.httpMetrics.RecordRateLimited(route)
}

// RecordCacheHit records a cache hit.
func (c *Collector) RecordCacheHit(cacheName string) {
	if !c.active() {
		return
	}
	c.cacheMetrics.RecordHit(cacheName)
}

// RecordCacheMiss records a cache miss.
func (c *Collector) RecordCacheMiss(cacheName string) {
	if !c.active() {
		return
	}
	c.cacheMetrics.RecordMiss(cacheName)
}

// RecordCacheEviction records a cache eviction.
func (c *Collector) RecordCacheEviction(cacheName string) {
	if !c.active() {
		return
	}
	c.cacheMetrics.RecordEviction(cacheName)
}

// UpdateCacheSize updates the current size of a cache.
func (c *Collector) UpdateCacheSize(cacheName string, size int) {
	if !c.active() {
		return
	}
	c.cacheMetrics.UpdateSize(cacheName, size)
}

// RecordHistoryWrite records a history write attempt.
func (c *Collector) RecordHistoryWrite(err error) {
	if !c.active() {
		return
	}
	c.historyMetrics.RecordWrite(err)
}

// RecordHistoryPrune records records removed by the retention pruner.
func (c *Collector) RecordHistoryPrune(removed int64) {
	if !c.active() {
		return
	}
	c.historyMetrics.RecordPrune(removed)
}

// Enabled reports whether the collector records metrics.
func (c *Collector) Enabled() bool {
	return c.active()
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
