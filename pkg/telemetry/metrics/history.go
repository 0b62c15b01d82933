package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HistoryMetrics tracks the generation history store.
//
// Metrics:
//   - mathgen_history_writes_total: write attempts by result
//   - mathgen_history_pruned_total: records removed by retention
type HistoryMetrics struct {
	writesTotal *prometheus.CounterVec
	prunedTotal prometheus.Counter
}

// NewHistoryMetrics creates and registers history metrics with the provided registry.
func NewHistoryMetrics(namespace string, registry *prometheus.Registry) *HistoryMetrics {
	hm := &HistoryMetrics{
		writesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_writes_total",
				Help:      "Total number of history records written",
			},
			[]string{"result"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_pruned_total",
				Help:      "Total number of history records removed by retention",
			},
		),
	}

	registry.MustRegister(hm.writesTotal, hm.prunedTotal)
	return hm
}

// RecordWrite records a write attempt.
func (hm *HistoryMetrics) RecordWrite(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	hm.writesTotal.WithLabelValues(result).Inc()
}

// RecordPrune records removed records.
func (hm *HistoryMetrics) RecordPrune(removed int64) {
	if removed > 0 {
		hm.prunedTotal.Add(float64(removed))
	}
}
