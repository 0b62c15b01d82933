package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mathgen-hq/mathgen/pkg/cli"
	"mathgen-hq/mathgen/pkg/history/retention"
	"mathgen-hq/mathgen/pkg/server"
	"mathgen-hq/mathgen/pkg/service"
	"mathgen-hq/mathgen/pkg/telemetry/health"
	"mathgen-hq/mathgen/pkg/telemetry/metrics"
	"mathgen-hq/mathgen/pkg/telemetry/tracing"
)

var serveFlags struct {
	listenAddress string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the mathgen HTTP API with the specified configuration.

The server exposes /v1/generate, /v1/parse and /v1/languages along with
health probes and Prometheus metrics. When history is enabled, every
generation is recorded and old records are pruned on the retention
schedule.`,
	Example: `  # Start with defaults
  mathgen serve

  # Start with a config file and override the listen address
  mathgen serve --config /etc/mathgen/config.yaml --listen 0.0.0.0:8090

  # Validate config without starting the server
  mathgen serve --dry-run`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}

	if serveFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)

	tracer, err := tracing.New(cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("serve", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	gen := service.New(service.OptionsFromConfig(cfg.Parser)).
		WithMetrics(collector).
		WithTracer(tracer).
		WithLogger(logger.Slog())
	if cfg.Server.CacheSize > 0 {
		if err := gen.EnableCache(cfg.Server.CacheSize); err != nil {
			return cli.NewCommandError("serve", err)
		}
	}

	srv := server.New(cfg, gen).
		WithMetrics(collector).
		WithTracer(tracer).
		WithLogger(logger).
		WithVersion(health.VersionInfo{
			Version:   Version,
			Commit:    GitCommit,
			BuildTime: BuildDate,
			GoVersion: runtime.Version(),
		})

	g, ctx := errgroup.WithContext(ctx)

	if cfg.History.Enabled {
		store, recorder, err := openHistory(cfg)
		if err != nil {
			return cli.NewCommandError("serve", err)
		}
		defer store.Close()
		defer recorder.Close()

		recorder.WithObserver(collector)
		gen.WithRecorder(recorder)
		srv.Checker().RegisterCheck("history", health.PingCheck(store))

		if cfg.History.Retention.PruneSchedule != "" {
			pruner := retention.NewPruner(store, cfg.History.Retention).WithObserver(collector)
			g.Go(func() error {
				if err := pruner.Start(ctx); err != nil {
					return fmt.Errorf("failed to start retention scheduler: %w", err)
				}
				if next := pruner.NextPruning(); next != nil {
					logger.Info("history retention scheduler started", "next_pruning", next)
				}
				<-ctx.Done()
				pruner.Stop()
				return nil
			})
		}
		logger.Info("history enabled", "backend", cfg.History.Backend)
	}

	g.Go(func() error {
		return srv.Start(ctx)
	})

	logger.Info("mathgen API starting",
		"version", Version,
		"address", cfg.Server.ListenAddress,
		"metrics_enabled", collector.Enabled(),
		"tracing_enabled", tracer.Enabled(),
	)

	if err := g.Wait(); err != nil {
		return cli.NewCommandError("serve", err)
	}
	return nil
}
