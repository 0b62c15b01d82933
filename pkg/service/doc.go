// Package service runs the generation pipeline shared by the CLI, the file
// watcher and the HTTP API.
//
// A Generator lexes, parses, optionally validates and prints an expression.
// Every stage gets its own trace span and duration metric. Parse trees are
// cached in an LRU keyed by the expression and the options that affect
// parsing, and each generation can be written to the history store.
//
//	gen := service.New(service.OptionsFromConfig(cfg.Parser)).
//		WithMetrics(collector).
//		WithTracer(tracer).
//		WithRecorder(recorder)
//	if err := gen.EnableCache(cfg.Server.CacheSize); err != nil {
//		return err
//	}
//
//	result, err := gen.Generate(ctx, service.Request{Expression: "2x^2", Language: "python"})
package service
