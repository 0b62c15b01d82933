// Package server provides the mathgen HTTP API.
//
// The server exposes the generation pipeline over JSON and ties together the
// middleware, health checks, metrics and tracing.
//
// # Basic Usage
//
//	cfg := config.GetConfig()
//	gen := service.New(service.OptionsFromConfig(cfg.Parser))
//
//	srv := server.New(cfg, gen).
//	    WithMetrics(collector).
//	    WithTracer(tracer).
//	    WithLogger(logger)
//
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Start blocks until ctx is canceled, then shuts down gracefully within
// server.shutdown_timeout.
//
// # Routes
//
//   - POST /v1/generate - Generate code for one expression
//   - POST /v1/parse - Return the parsed tree of one expression
//   - GET /v1/languages - List target languages and their aliases
//   - GET /health - Liveness probe
//   - GET /ready - Readiness probe (runs the registered checks)
//   - GET /version - Build information
//   - GET /metrics - Prometheus metrics (when enabled)
//
// # Errors
//
// Expression errors are returned with status 400:
//
//	{
//	    "error": {
//	        "type": "print",
//	        "code": "UnknownFunction",
//	        "message": "unknown function \"sinn\"",
//	        "position": 0,
//	        "suggestion": "did you mean \"sin\"?"
//	    }
//	}
//
// Strict mode may report several validation errors at once; they are listed
// under "errors" with the first repeated under "error".
package server
