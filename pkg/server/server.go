package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"mathgen-hq/mathgen/pkg/config"
	"mathgen-hq/mathgen/pkg/server/middleware"
	"mathgen-hq/mathgen/pkg/service"
	"mathgen-hq/mathgen/pkg/telemetry/health"
	"mathgen-hq/mathgen/pkg/telemetry/logging"
	"mathgen-hq/mathgen/pkg/telemetry/metrics"
	"mathgen-hq/mathgen/pkg/telemetry/tracing"
)

// Server is the mathgen HTTP API server.
type Server struct {
	config          config.ServerConfig
	telemetry       config.TelemetryConfig
	defaultLanguage string

	generator *service.Generator
	checker   *health.Checker
	metrics   *metrics.Collector
	tracer    *tracing.Tracer
	logger    *logging.Logger
	version   health.VersionInfo

	httpServer   *http.Server
	listener     net.Listener
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// New creates a server for gen using the server, output and telemetry
// sections of cfg. The readiness probe runs a self-test through gen.
func New(cfg *config.Config, gen *service.Generator) *Server {
	checker := health.New(cfg.Server.ReadTimeout)
	checker.RegisterCheck("generator", health.SelfTestCheck(gen.GenerateFunc(), gen.Registry().Languages()...))

	return &Server{
		config:          cfg.Server,
		telemetry:       cfg.Telemetry,
		defaultLanguage: cfg.Output.DefaultLanguage,
		generator:       gen,
		checker:         checker,
		tracer:          tracing.Noop(),
		logger:          logging.Discard(),
	}
}

// WithMetrics records HTTP metrics on collector and serves it on the
// configured metrics path.
func (s *Server) WithMetrics(collector *metrics.Collector) *Server {
	s.metrics = collector
	return s
}

// WithTracer starts a server span for every request.
func (s *Server) WithTracer(tracer *tracing.Tracer) *Server {
	if tracer != nil {
		s.tracer = tracer
	}
	return s
}

// WithLogger sets the request and lifecycle logger.
func (s *Server) WithLogger(logger *logging.Logger) *Server {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithVersion sets the information served on /version.
func (s *Server) WithVersion(info health.VersionInfo) *Server {
	s.version = info
	return s
}

// Checker returns the health checker so callers can register more checks.
func (s *Server) Checker() *health.Checker {
	return s.checker
}

// Handler returns the router with the full middleware chain.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.RequestID)
	r.Use(tracing.HTTPMiddleware(s.tracer))
	r.Use(middleware.Logging(s.logger))
	r.Use(middleware.Metrics(s.metrics))

	info := s.version
	info.Languages = s.generator.Registry().Languages()
	health.Mount(r, s.checker, s.telemetry.Health, info)

	if s.metrics.Enabled() && s.telemetry.Metrics.Path != "" {
		r.Handle(s.telemetry.Metrics.Path, s.metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		if s.config.RateLimit.Enabled {
			r.Use(middleware.NewRateLimiter(s.config.RateLimit).WithMetrics(s.metrics).Middleware)
		}
		r.Post("/generate", s.handleGenerate)
		r.Post("/parse", s.handleParse)
		r.Get("/languages", s.handleLanguages)
	})

	return r
}

// Start listens on the configured address and serves until ctx is canceled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	listener, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	s.isRunning = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "address", listener.Addr().String())
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err, ok := <-errChan:
		s.setRunning(false)
		if ok {
			return err
		}
		return nil
	}
}

// Shutdown stops accepting connections and waits for active requests up to
// the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.RLock()
		srv := s.httpServer
		s.mu.RUnlock()
		if srv == nil {
			return
		}

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.setRunning(false)
		s.logger.Info("API server stopped")
	})

	return shutdownErr
}

// Addr returns the address the server is listening on, or "" before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *Server) setRunning(running bool) {
	s.mu.Lock()
	s.isRunning = running
	s.mu.Unlock()
}
