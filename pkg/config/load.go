package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "MATHGEN_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// Environment variables are not consulted; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML configuration and applies defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration and applies environment
// variable overrides. An empty path starts from the defaults instead of a
// file. Environment variables always take precedence over the file.
//
// The loading sequence is:
// 1. Load YAML from file (or start from defaults)
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = NewDefault()
	} else {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format MATHGEN_SECTION_FIELD. Values that do
// not parse are ignored.
func applyEnvOverrides(cfg *Config) {
	// Parser overrides
	if val := env("PARSER_VARIABLES"); val != "" {
		cfg.Parser.Variables = splitList(val)
	}
	envBool("PARSER_CONVENTIONAL_PRECEDENCE", &cfg.Parser.ConventionalPrecedence)
	envBool("PARSER_STRICT", &cfg.Parser.Strict)
	envInt("PARSER_MAX_DEPTH", &cfg.Parser.MaxDepth)

	// Output overrides
	envString("OUTPUT_DEFAULT_LANGUAGE", &cfg.Output.DefaultLanguage)
	envString("OUTPUT_FORMAT", &cfg.Output.Format)

	// Server overrides
	envString("SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	envDuration("SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	envDuration("SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	envDuration("SERVER_IDLE_TIMEOUT", &cfg.Server.IdleTimeout)
	envDuration("SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	envInt("SERVER_CACHE_SIZE", &cfg.Server.CacheSize)
	envBool("SERVER_RATE_LIMIT_ENABLED", &cfg.Server.RateLimit.Enabled)
	if val := env("SERVER_RATE_LIMIT_REQUESTS_PER_SECOND"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Server.RateLimit.RequestsPerSecond = f
		}
	}
	envInt("SERVER_RATE_LIMIT_BURST", &cfg.Server.RateLimit.Burst)

	// History overrides
	envBool("HISTORY_ENABLED", &cfg.History.Enabled)
	envString("HISTORY_BACKEND", &cfg.History.Backend)
	envString("HISTORY_SQLITE_PATH", &cfg.History.SQLite.Path)
	envInt("HISTORY_RETENTION_DAYS", &cfg.History.Retention.Days)
	envInt("HISTORY_RETENTION_MAX_RECORDS", &cfg.History.Retention.MaxRecords)
	envString("HISTORY_RETENTION_PRUNE_SCHEDULE", &cfg.History.Retention.PruneSchedule)

	// Watch overrides
	envDuration("WATCH_DEBOUNCE", &cfg.Watch.Debounce)

	// Telemetry overrides
	envString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	if val := env("TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = &b
		}
	}
	envString("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	envBool("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	envString("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	if val := env("TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

func env(name string) string {
	return os.Getenv(EnvPrefix + name)
}

func envString(name string, target *string) {
	if val := env(name); val != "" {
		*target = val
	}
}

func envBool(name string, target *bool) {
	if val := env(name); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*target = b
		}
	}
}

func envInt(name string, target *int) {
	if val := env(name); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*target = i
		}
	}
}

func envDuration(name string, target *time.Duration) {
	if val := env(name); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*target = d
		}
	}
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(val string) []string {
	var result []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
