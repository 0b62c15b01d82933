// Package tracing provides OpenTelemetry tracing for the generation pipeline.
//
// # Overview
//
// Each generation opens a span with one child span per pipeline stage
// (lex, parse, validate, print). Failed stages record the expression error
// code and column so a trace shows exactly where an input was rejected.
// Spans are exported over OTLP gRPC.
//
// # Trace Context Propagation
//
// HTTPMiddleware continues W3C Trace Context from incoming requests:
//
//	traceparent: 00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
//
// and returns the trace ID in the X-Trace-ID response header.
//
// # Sampling Strategies
//
//   - always: Sample all traces (development/debugging)
//   - never: Sample no traces
//   - ratio: Sample a fraction of root traces (production)
//
// # Usage
//
//	tracer, err := tracing.New(cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.StartStage(ctx, "parse")
//	node, err := p.Parse(tokens)
//	tracing.End(span, err)
//
// When tracing is disabled, New returns a noop tracer.
package tracing
