// Package metrics provides Prometheus metrics collection for mathgen.
//
// # Overview
//
// The metrics package records how expressions flow through the generator:
// how many were generated per target language, how long each pipeline stage
// took, which stage rejected an expression, how the parse cache performs and
// what the HTTP surface and history store are doing.
//
// # Metrics Categories
//
//   - Generation Metrics: generation count, duration and tree size by language
//   - Stage Metrics: lex, parse, validate and print durations and failures
//   - HTTP Metrics: request count, latency and rate-limit rejections
//   - Cache Metrics: parse cache hits, misses, size and evictions
//   - History Metrics: records written, pruned and failed writes
//
// # Usage
//
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//
//	collector.RecordGeneration("python", "success", 3*time.Millisecond, 7)
//	collector.RecordStage("parse", 120*time.Microsecond)
//	collector.RecordStageError("parse", "UnmatchedBeginGroup")
//
//	http.Handle("/metrics", collector.Handler())
//
// # Prometheus Endpoint
//
//	# HELP mathgen_generations_total Total number of generation requests
//	# TYPE mathgen_generations_total counter
//	mathgen_generations_total{language="python",status="success"} 12
//
// # Cardinality Management
//
// Language names come from user input. Label sets beyond the cardinality
// limit are aggregated into "other".
package metrics
