package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"valid", func(*Config) {}, ""},
		{"variable with digit", func(c *Config) { c.Parser.Variables = []string{"x1"} }, "parser.variables[0]"},
		{"empty variable", func(c *Config) { c.Parser.Variables = []string{"a", ""} }, "parser.variables[1]"},
		{"max depth", func(c *Config) { c.Parser.MaxDepth = -1 }, "parser.max_depth"},
		{"language", func(c *Config) { c.Output.DefaultLanguage = "rust" }, "output.default_language"},
		{"output format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"listen address", func(c *Config) { c.Server.ListenAddress = "nohost" }, "server.listen_address"},
		{"rate limit", func(c *Config) {
			c.Server.RateLimit.Enabled = true
			c.Server.RateLimit.RequestsPerSecond = -1
		}, "server.rate_limit.requests_per_second"},
		{"history backend", func(c *Config) { c.History.Backend = "s3" }, "history.backend"},
		{"prune schedule", func(c *Config) { c.History.Retention.PruneSchedule = "every day" }, "history.retention.prune_schedule"},
		{"log level", func(c *Config) { c.Telemetry.Logging.Level = "trace" }, "telemetry.logging.level"},
		{"sampler", func(c *Config) { c.Telemetry.Tracing.Sampler = "sometimes" }, "telemetry.tracing.sampler"},
		{"sample ratio", func(c *Config) { c.Telemetry.Tracing.SampleRatio = 2 }, "telemetry.tracing.sample_ratio"},
		{"debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.modify(cfg)
			err := Validate(cfg)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() errors = %v, want field %q", verr.Errors, tt.wantField)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if got := single.Error(); got != "configuration validation failed: a: bad" {
		t.Errorf("Error() = %q", got)
	}

	multi := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	got := multi.Error()
	if !strings.Contains(got, "with 2 errors") || !strings.Contains(got, "  - b: worse") {
		t.Errorf("Error() = %q", got)
	}
}
