package config

import (
	"fmt"
	"sync/atomic"
)

// current is the process-wide configuration installed by the CLI.
var current atomic.Pointer[Config]

// GetConfig returns the installed configuration, or nil before SetConfig.
// Library code takes an explicit *Config; this is for command wiring.
func GetConfig() *Config {
	return current.Load()
}

// SetConfig installs cfg as the process-wide configuration.
func SetConfig(cfg *Config) {
	current.Store(cfg)
}

// ReloadConfig loads path (plus MATHGEN_* overrides) and installs it. On
// failure the installed configuration is left as it was.
func ReloadConfig(path string) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, fmt.Errorf("failed to reload configuration: %w", err)
	}
	current.Store(cfg)
	return cfg, nil
}
