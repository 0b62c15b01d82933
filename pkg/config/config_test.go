package config

import (
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("Server.ListenAddress = %q, want %q", cfg.Server.ListenAddress, DefaultListenAddress)
	}
	if cfg.Parser.MaxDepth != DefaultParserMaxDepth {
		t.Errorf("Parser.MaxDepth = %d, want %d", cfg.Parser.MaxDepth, DefaultParserMaxDepth)
	}
	if cfg.History.Backend != "sqlite" {
		t.Errorf("History.Backend = %q, want %q", cfg.History.Backend, "sqlite")
	}
	if cfg.Watch.Debounce != 100*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 100ms", cfg.Watch.Debounce)
	}
	if !cfg.Telemetry.Metrics.IsEnabled() {
		t.Error("metrics should be enabled by default")
	}
	if cfg.History.Enabled {
		t.Error("history should be disabled by default")
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("default configuration is invalid: %v", err)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	disabled := false
	cfg := &Config{
		Server:    ServerConfig{ListenAddress: "0.0.0.0:9000", CacheSize: -1},
		Telemetry: TelemetryConfig{Metrics: MetricsConfig{Enabled: &disabled}},
	}
	ApplyDefaults(cfg)
	ApplyDefaults(cfg)

	if cfg.Server.ListenAddress != "0.0.0.0:9000" {
		t.Errorf("Server.ListenAddress = %q, want %q", cfg.Server.ListenAddress, "0.0.0.0:9000")
	}
	if cfg.Server.CacheSize != -1 {
		t.Errorf("Server.CacheSize = %d, want -1", cfg.Server.CacheSize)
	}
	if cfg.Telemetry.Metrics.IsEnabled() {
		t.Error("metrics should stay disabled")
	}
}
