package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"mathgen-hq/mathgen/pkg/cli"
	"mathgen-hq/mathgen/pkg/config"
	"mathgen-hq/mathgen/pkg/history"
	"mathgen-hq/mathgen/pkg/history/storage"
	"mathgen-hq/mathgen/pkg/service"
	"mathgen-hq/mathgen/pkg/telemetry/logging"
)

var (
	appConfig *config.Config
	logger    *logging.Logger
)

// setup loads the configuration and installs the logger before any
// command runs.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewExitError(cli.ExitUsage, cli.NewConfigError("", err.Error()))
	}

	logCfg := logging.FromConfig(cfg.Telemetry.Logging, cmd.ErrOrStderr())
	if verbose {
		logCfg.Level = "debug"
	} else if cmd.Name() != "serve" && logCfg.Level == "info" {
		// Commands other than serve report through diagnostics.
		logCfg.Level = "warn"
	}

	l, err := logging.New(logCfg)
	if err != nil {
		return cli.NewExitError(cli.ExitUsage, cli.NewConfigError("telemetry.logging", err.Error()))
	}

	config.SetConfig(cfg)
	appConfig = cfg
	logger = l
	slog.SetDefault(l.Slog())

	logger.Debug("configuration loaded", "path", cfgFile, "history_enabled", cfg.History.Enabled)
	return nil
}

// newGenerator builds a generator from the parser defaults. When history
// is enabled, generations are recorded and the returned close function
// flushes them.
func newGenerator(cfg *config.Config) (*service.Generator, func(), error) {
	gen := service.New(service.OptionsFromConfig(cfg.Parser))

	if !cfg.History.Enabled {
		return gen, func() {}, nil
	}

	store, recorder, err := openHistory(cfg)
	if err != nil {
		return nil, nil, err
	}
	gen.WithRecorder(recorder)

	return gen, func() {
		if err := recorder.Close(); err != nil {
			logger.Warn("failed to flush history", "error", err)
		}
		if err := store.Close(); err != nil {
			logger.Warn("failed to close history store", "error", err)
		}
	}, nil
}

// openHistory opens the configured store and starts a recorder on it.
func openHistory(cfg *config.Config) (history.Store, *history.Recorder, error) {
	store, err := storage.New(cfg.History)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return store, history.NewRecorder(store, history.DefaultRecorderConfig()), nil
}
