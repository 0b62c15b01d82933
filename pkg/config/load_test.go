package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
parser:
  variables: ["a", "β"]
  conventional_precedence: true
output:
  default_language: py
server:
  listen_address: "0.0.0.0:9090"
  read_timeout: "3s"
history:
  enabled: true
  backend: memory
telemetry:
  logging:
    level: debug
    format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if !reflect.DeepEqual(cfg.Parser.Variables, []string{"a", "β"}) {
		t.Errorf("Parser.Variables = %v", cfg.Parser.Variables)
	}
	if !cfg.Parser.ConventionalPrecedence {
		t.Error("Parser.ConventionalPrecedence = false, want true")
	}
	if cfg.Output.DefaultLanguage != "py" {
		t.Errorf("Output.DefaultLanguage = %q, want %q", cfg.Output.DefaultLanguage, "py")
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 3s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("Server.WriteTimeout = %v, want default %v", cfg.Server.WriteTimeout, DefaultWriteTimeout)
	}
	if cfg.History.Backend != "memory" {
		t.Errorf("History.Backend = %q, want %q", cfg.History.Backend, "memory")
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("Telemetry.Logging.Level = %q, want %q", cfg.Telemetry.Logging.Level, "debug")
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadConfig() succeeded, want error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "parser: [unclosed")
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("LoadConfig() error = %v, want parse failure", err)
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
output:
  default_language: cobol
history:
  backend: postgres
`)
	_, err := LoadConfig(path)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("LoadConfig() error = %v, want ValidationError", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("len(Errors) = %d, want 2: %v", len(verr.Errors), verr)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	t.Setenv("MATHGEN_PARSER_VARIABLES", "a, b,,c")
	t.Setenv("MATHGEN_PARSER_STRICT", "true")
	t.Setenv("MATHGEN_SERVER_LISTEN_ADDRESS", "127.0.0.1:7000")
	t.Setenv("MATHGEN_SERVER_READ_TIMEOUT", "2s")
	t.Setenv("MATHGEN_SERVER_CACHE_SIZE", "not-a-number")
	t.Setenv("MATHGEN_TELEMETRY_METRICS_ENABLED", "false")
	t.Setenv("MATHGEN_HISTORY_RETENTION_DAYS", "7")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() failed: %v", err)
	}

	if !reflect.DeepEqual(cfg.Parser.Variables, []string{"a", "b", "c"}) {
		t.Errorf("Parser.Variables = %v, want [a b c]", cfg.Parser.Variables)
	}
	if !cfg.Parser.Strict {
		t.Error("Parser.Strict = false, want true")
	}
	if cfg.Server.ListenAddress != "127.0.0.1:7000" {
		t.Errorf("Server.ListenAddress = %q", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 2*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 2s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.CacheSize != DefaultCacheSize {
		t.Errorf("Server.CacheSize = %d, invalid override should be ignored", cfg.Server.CacheSize)
	}
	if cfg.Telemetry.Metrics.IsEnabled() {
		t.Error("metrics should be disabled by override")
	}
	if cfg.History.Retention.Days != 7 {
		t.Errorf("History.Retention.Days = %d, want 7", cfg.History.Retention.Days)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidResult(t *testing.T) {
	t.Setenv("MATHGEN_TELEMETRY_LOGGING_LEVEL", "verbose")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil || !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("error = %v, want validation failure after overrides", err)
	}
}
