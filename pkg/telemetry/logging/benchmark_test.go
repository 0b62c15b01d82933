package logging

import (
	"context"
	"io"
	"testing"
)

func BenchmarkLogger(b *testing.B) {
	ctx := WithLanguage(WithRequestID(context.Background(), "req-1"), "python")

	for _, format := range []string{"json", "text", "console"} {
		logger, err := New(Config{Level: "info", Format: format, Writer: io.Discard})
		if err != nil {
			b.Fatalf("New(%s) failed: %v", format, err)
		}

		b.Run(format+"/info", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				logger.InfoContext(ctx, "generation finished", "nodes", i)
			}
		})

		// Filtered out by level; should not allocate.
		b.Run(format+"/debug-disabled", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				logger.Debug("generation finished", "nodes", i)
			}
		})
	}
}
