package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StageMetrics tracks the individual pipeline stages.
//
// Metrics:
//   - mathgen_stage_duration_seconds: duration by stage
//   - mathgen_stage_errors_total: failures by stage and error code
type StageMetrics struct {
	duration    *prometheus.HistogramVec
	errorsTotal *prometheus.CounterVec
}

// NewStageMetrics creates and registers stage metrics with the provided registry.
func NewStageMetrics(namespace string, registry *prometheus.Registry) *StageMetrics {
	sm := &StageMetrics{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of a pipeline stage in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10),
			},
			[]string{"stage"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stage_errors_total",
				Help:      "Total number of expressions rejected by a pipeline stage",
			},
			[]string{"stage", "code"},
		),
	}

	registry.MustRegister(sm.duration, sm.errorsTotal)
	return sm
}

// RecordDuration records how long a stage took.
func (sm *StageMetrics) RecordDuration(stage string, duration time.Duration) {
	sm.duration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordError records a stage failure.
func (sm *StageMetrics) RecordError(stage, code string) {
	sm.errorsTotal.WithLabelValues(stage, code).Inc()
}
