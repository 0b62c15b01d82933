package metrics

import (
	"testing"
	"time"
)

func BenchmarkCollector_RecordGeneration(b *testing.B) {
	collector := NewCollector(testConfig(), nil)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		collector.RecordGeneration("python", "success", time.Millisecond, 9)
	}
}

func BenchmarkCollector_RecordStage(b *testing.B) {
	collector := NewCollector(testConfig(), nil)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		collector.RecordStage("parse", 20*time.Microsecond)
	}
}

func BenchmarkCardinalityLimiter_Allow(b *testing.B) {
	limiter := NewCardinalityLimiter(DefaultMaxCardinality)
	limiter.Allow("python")

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			limiter.Allow("python")
		}
	})
}
