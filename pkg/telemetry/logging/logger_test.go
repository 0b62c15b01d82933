package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"mathgen-hq/mathgen/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid JSON config", Config{Level: "info", Format: "json"}, false},
		{"valid text config", Config{Level: "debug", Format: "text"}, false},
		{"valid console config", Config{Level: "warn", Format: "console"}, false},
		{"defaults", Config{}, false},
		{"invalid log level", Config{Level: "invalid", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "invalid"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}
			_, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := FromConfig(config.LoggingConfig{Level: "debug", Format: "json", AddSource: true}, buf)

	if cfg.Level != "debug" || cfg.Format != "json" || !cfg.AddSource || cfg.Writer != buf {
		t.Errorf("FromConfig() = %+v", cfg)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logMethod func(*Logger, string)
		wantLog   bool
	}{
		{"debug level logs debug", "debug", func(l *Logger, m string) { l.Debug(m) }, true},
		{"info level filters debug", "info", func(l *Logger, m string) { l.Debug(m) }, false},
		{"info level logs info", "info", func(l *Logger, m string) { l.Info(m) }, true},
		{"warn level filters info", "warn", func(l *Logger, m string) { l.Info(m) }, false},
		{"warn level logs warn", "warn", func(l *Logger, m string) { l.Warn(m) }, true},
		{"error level filters warn", "error", func(l *Logger, m string) { l.Warn(m) }, false},
		{"error level logs error", "error", func(l *Logger, m string) { l.Error(m) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(Config{Level: tt.logLevel, Format: "json", Writer: buf})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			tt.logMethod(logger, "test message")

			if got := strings.Contains(buf.String(), "test message"); got != tt.wantLog {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.wantLog, buf.String())
			}
		})
	}
}

func TestLogger_StructuredFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("generated", "language", "python", "nodes", 7)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry: %v", err)
	}
	if entry["msg"] != "generated" {
		t.Errorf("msg = %v, want %q", entry["msg"], "generated")
	}
	if entry["language"] != "python" {
		t.Errorf("language = %v, want %q", entry["language"], "python")
	}
	if entry["nodes"] != float64(7) {
		t.Errorf("nodes = %v, want 7", entry["nodes"])
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.With("component", "watcher").Info("started")

	if !strings.Contains(buf.String(), `"component":"watcher"`) {
		t.Errorf("output %q missing component field", buf.String())
	}
}

func TestLogger_ContextMethods(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "debug", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := WithRequestID(context.Background(), "req-42")
	ctx = WithLanguage(ctx, "go")
	ctx = WithFile(ctx, "formulas.txt")

	logger.InfoContext(ctx, "printing")

	out := buf.String()
	for _, want := range []string{`"request_id":"req-42"`, `"language":"go"`, `"file":"formulas.txt"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}

	buf.Reset()
	logger.WithContext(ctx).Warn("slow")
	if !strings.Contains(buf.String(), `"request_id":"req-42"`) {
		t.Errorf("WithContext() output %q missing request_id", buf.String())
	}

	if logger.WithContext(context.Background()) != logger {
		t.Error("WithContext() with empty context should return the same logger")
	}
}

func TestLogger_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"hello"`},
		{"text", "msg=hello"},
		{"console", "msg=hello"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(Config{Level: "info", Format: tt.format, Writer: buf})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			logger.Info("hello")
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
			if logger.Format() != LogFormat(tt.format) {
				t.Errorf("Format() = %q, want %q", logger.Format(), tt.format)
			}
		})
	}
}

func TestLogger_AddSource(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", AddSource: true, Writer: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("with source")

	if !strings.Contains(buf.String(), `"source":`) {
		t.Errorf("output %q missing source", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.Enabled(slog.LevelError) {
		t.Error("Discard() logger should not be enabled at error level")
	}
	logger.Error("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"fatal", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColorLevel(t *testing.T) {
	attr := colorLevel(nil, slog.Any(slog.LevelKey, slog.LevelWarn))
	if !strings.Contains(attr.Value.String(), "WARN") {
		t.Errorf("colorLevel() = %q, want it to contain WARN", attr.Value.String())
	}

	other := slog.String("msg", "x")
	if got := colorLevel(nil, other); !got.Equal(other) {
		t.Errorf("colorLevel() changed non-level attribute: %v", got)
	}
}
