package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GenerationMetrics tracks end-to-end expression generation.
//
// Metrics:
//   - mathgen_generations_total: generation count by language and status
//   - mathgen_generation_duration_seconds: generation duration histogram
//   - mathgen_expression_nodes: AST size histogram
type GenerationMetrics struct {
	generationsTotal *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	nodes            *prometheus.HistogramVec
}

// NewGenerationMetrics creates and registers generation metrics with the provided registry.
func NewGenerationMetrics(namespace string, registry *prometheus.Registry) *GenerationMetrics {
	gm := &GenerationMetrics{
		generationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Total number of generation requests",
			},
			[]string{"language", "status"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Duration of expression generation in seconds",
				// 10µs to ~160ms
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"language"},
		),

		nodes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "expression_nodes",
				Help:      "Number of AST nodes per generated expression",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"language"},
		),
	}

	registry.MustRegister(gm.generationsTotal, gm.duration, gm.nodes)
	return gm
}

// Record records a single generation.
func (gm *GenerationMetrics) Record(language, status string, duration time.Duration, nodes int) {
	gm.generationsTotal.WithLabelValues(language, status).Inc()
	gm.duration.WithLabelValues(language).Observe(duration.Seconds())
	if nodes > 0 {
		gm.nodes.WithLabelValues(language).Observe(float64(nodes))
	}
}
