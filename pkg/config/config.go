package config

import "time"

// Config is the root configuration structure for mathgen.
type Config struct {
	// Parser controls how expressions are parsed.
	Parser ParserConfig `yaml:"parser"`

	// Output controls code generation defaults.
	Output OutputConfig `yaml:"output"`

	// Server contains HTTP API configuration.
	Server ServerConfig `yaml:"server"`

	// History contains configuration for the generation history store.
	History HistoryConfig `yaml:"history"`

	// Watch contains configuration for the file watcher.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains logging, metrics, tracing and health configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ParserConfig contains expression parsing configuration.
type ParserConfig struct {
	// Variables are names that multiply a following group instead of
	// being called as a function: with "a" declared, "a(b)" is a*b.
	// Default: [] (none)
	Variables []string `yaml:"variables"`

	// ConventionalPrecedence makes + and - share a tier, *, / and % share
	// a tier, and both associate to the left.
	// Default: false
	ConventionalPrecedence bool `yaml:"conventional_precedence"`

	// Strict runs the validator before printing so unknown names and bad
	// argument counts are all reported at once.
	// Default: false
	Strict bool `yaml:"strict"`

	// MaxDepth is the maximum parenthesis nesting depth.
	// Default: 128
	MaxDepth int `yaml:"max_depth"`
}

// OutputConfig contains code generation defaults.
type OutputConfig struct {
	// DefaultLanguage is used when no language is given.
	// Options: "python", "javascript", "php", "go" (or an alias)
	// Default: "" (a language must be given)
	DefaultLanguage string `yaml:"default_language"`

	// Format is the output format for structured command output.
	// Options: "text", "json", "yaml"
	// Default: "text"
	Format string `yaml:"format"`
}

// ServerConfig contains configuration for the HTTP API server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:8090"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response writes.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next keep-alive request.
	// Default: 60s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxBodyBytes limits the size of request bodies.
	// Default: 65536 (64KB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// CacheSize is the number of parsed expressions kept in memory.
	// Set to a negative value to disable caching.
	// Default: 1024
	CacheSize int `yaml:"cache_size"`

	// RateLimit configures per-client request rate limiting.
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig contains per-client token bucket configuration.
type RateLimitConfig struct {
	// Enabled controls whether requests are rate limited.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// RequestsPerSecond is the sustained request rate per client.
	// Default: 20
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst is the maximum number of requests allowed at once.
	// Default: 40
	Burst int `yaml:"burst"`
}

// HistoryConfig contains configuration for the generation history store.
type HistoryConfig struct {
	// Enabled controls whether generations are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend.
	// Options: "memory", "sqlite"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite backend configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention controls automatic pruning of old records.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains SQLite storage configuration.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// BusyTimeout is how long a writer waits for a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains history retention configuration.
type RetentionConfig struct {
	// Days is how long records are kept. Zero keeps records forever.
	// Default: 30
	Days int `yaml:"days"`

	// MaxRecords caps the number of records kept. Zero means no cap.
	// Default: 0
	MaxRecords int `yaml:"max_records"`

	// PruneSchedule is a cron expression for the pruning job.
	// Default: "0 3 * * *" (daily at 03:00)
	PruneSchedule string `yaml:"prune_schedule"`
}

// WatchConfig contains file watcher configuration.
type WatchConfig struct {
	// Debounce is the quiet period after a change before regenerating.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Health contains health check configuration.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether Prometheus metrics are exposed by the server.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes every metric name.
	// Default: "mathgen"
	Namespace string `yaml:"namespace"`
}

// IsEnabled reports whether metrics are enabled, treating unset as enabled.
func (m MetricsConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Default: 0.1
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS for the collector connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// ServiceName is the service name attached to spans.
	// Default: "mathgen"
	ServiceName string `yaml:"service_name"`
}

// HealthConfig contains health check endpoint configuration.
type HealthConfig struct {
	// LivenessPath is the HTTP path of the liveness probe.
	// Default: "/health"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath is the HTTP path of the readiness probe.
	// Default: "/ready"
	ReadinessPath string `yaml:"readiness_path"`
}
