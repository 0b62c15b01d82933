// Package health provides health check endpoints for mathgen.
//
// # Overview
//
// The health package implements liveness and readiness probes for the HTTP
// server, along with a version endpoint. Components register check functions
// that run concurrently on each readiness probe.
//
// # Endpoints
//
//   - /health: Liveness probe - the process is running
//   - /ready: Readiness probe - every registered check passes
//   - /version: Build information and registered languages
//
// # Usage
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("generator", health.SelfTestCheck(gen.GenerateCode, printer.Languages()...))
//	checker.RegisterCheck("history", health.PingCheck(store))
//
//	r := chi.NewRouter()
//	health.Mount(r, checker, cfg.Telemetry.Health, health.VersionInfo{Version: version})
//
// # Built-in Checks
//
// SelfTestCheck generates a fixed probe expression for every language, so a
// printer regression turns the server unready. PingCheck verifies a storage
// backend such as the SQLite history store.
package health
