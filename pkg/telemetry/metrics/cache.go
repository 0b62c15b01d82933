package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics tracks lookups against named caches (today only the parse
// tree cache, labelled cache="parse").
//
// The hit rate is derived in PromQL:
//
//	rate(mathgen_cache_hits_total{cache="parse"}[5m]) /
//	(rate(mathgen_cache_hits_total{cache="parse"}[5m]) +
//	 rate(mathgen_cache_misses_total{cache="parse"}[5m]))
type CacheMetrics struct {
	hitsTotal      *prometheus.CounterVec
	missesTotal    *prometheus.CounterVec
	evictionsTotal *prometheus.CounterVec
	entries        *prometheus.GaugeVec
}

// NewCacheMetrics creates and registers cache metrics with the provided registry.
func NewCacheMetrics(namespace string, registry *prometheus.Registry) *CacheMetrics {
	counter := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, []string{"cache"})
	}

	cm := &CacheMetrics{
		hitsTotal:      counter("cache_hits_total", "Total number of cache hits"),
		missesTotal:    counter("cache_misses_total", "Total number of cache misses"),
		evictionsTotal: counter("cache_evictions_total", "Total number of cache evictions"),
		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Current number of entries in cache",
		}, []string{"cache"}),
	}
	registry.MustRegister(cm.hitsTotal, cm.missesTotal, cm.evictionsTotal, cm.entries)
	return cm
}

func (cm *CacheMetrics) RecordHit(cache string)  { cm.hitsTotal.WithLabelValues(cache).Inc() }
func (cm *CacheMetrics) RecordMiss(cache string) { cm.missesTotal.WithLabelValues(cache).Inc() }

// RecordEviction records an entry dropped to make room for a new one.
func (cm *CacheMetrics) RecordEviction(cache string) {
	cm.evictionsTotal.WithLabelValues(cache).Inc()
}

// UpdateSize sets the current entry count of cache.
func (cm *CacheMetrics) UpdateSize(cache string, size int) {
	cm.entries.WithLabelValues(cache).Set(float64(size))
}
