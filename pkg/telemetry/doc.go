// Package telemetry groups the observability packages for mathgen.
//
// # Components
//
//   - logging: Structured logging on log/slog
//   - metrics: Prometheus metrics collection
//   - tracing: OpenTelemetry tracing of the generation pipeline
//   - health: Liveness, readiness and version endpoints
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	logger, _ := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//	tracer, _ := tracing.New(cfg.Telemetry.Tracing, version)
//	defer tracer.Shutdown(context.Background())
//
//	logger.Info("expression generated", "language", "python")
//	collector.RecordGeneration("python", "success", time.Millisecond, 5)
package telemetry
