package watch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mathgen-hq/mathgen/pkg/config"
	"mathgen-hq/mathgen/pkg/service"
	"mathgen-hq/mathgen/pkg/telemetry/logging"
)

// Generator produces code for a request. *service.Generator satisfies it.
type Generator interface {
	Generate(ctx context.Context, req service.Request) (*service.Result, error)
}

// Config contains configuration for a watcher.
type Config struct {
	// Input is the expression file to watch.
	Input string

	// Output is the file the generated code is written to. Empty writes
	// nothing and only reports results.
	Output string

	// Language is the target language name or alias.
	Language string

	// Variables, Conventional and Strict are passed with every request.
	Variables    []string
	Conventional bool
	Strict       bool

	// Debounce is the quiet period after a change before regenerating.
	// Default: 100ms
	Debounce time.Duration
}

// ResultFunc receives the outcome of every regeneration.
type ResultFunc func(result *service.Result, err error)

// Watcher regenerates code when its input file changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	config   Config
	gen      Generator
	debounce *Debouncer
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher. The input file must exist.
func New(cfg Config, gen Generator) (*Watcher, error) {
	if cfg.Input == "" {
		return nil, errors.New("input file is required")
	}
	if cfg.Language == "" {
		return nil, errors.New("language is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = config.DefaultWatchDebounce
	}

	input, err := filepath.Abs(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input path: %w", err)
	}
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input %q is a directory", cfg.Input)
	}
	cfg.Input = input

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsw,
		config:   cfg,
		gen:      gen,
		debounce: NewDebouncer(cfg.Debounce),
		logger:   slog.Default().With("component", "watch"),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// WithLogger replaces the logger.
func (w *Watcher) WithLogger(logger *slog.Logger) *Watcher {
	w.logger = logger
	return w
}

// Regenerate reads the input, generates code and writes the output once.
func (w *Watcher) Regenerate(ctx context.Context) (*service.Result, error) {
	text, err := ReadExpression(w.config.Input)
	if err != nil {
		return nil, err
	}

	result, err := w.gen.Generate(ctx, service.Request{
		Expression:   text,
		Language:     w.config.Language,
		Variables:    w.config.Variables,
		Conventional: w.config.Conventional,
		Strict:       w.config.Strict,
	})
	if err != nil {
		return nil, err
	}

	if w.config.Output != "" {
		if err := writeAtomic(w.config.Output, result.Output+"\n"); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Watch regenerates once, then again after every change to the input, until
// ctx is cancelled or Stop is called. onResult may be nil.
func (w *Watcher) Watch(ctx context.Context, onResult ResultFunc) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	ctx = logging.WithFile(ctx, w.config.Input)
	run := func() {
		result, err := w.Regenerate(ctx)
		if err != nil {
			w.logger.Error("regeneration failed", "file", w.config.Input, "error", err)
		} else {
			w.logger.Info("regenerated",
				"file", w.config.Input,
				"output", w.config.Output,
				"language", result.Language,
			)
		}
		if onResult != nil {
			onResult(result, err)
		}
	}

	if err := w.watcher.Add(filepath.Dir(w.config.Input)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", filepath.Dir(w.config.Input), err)
	}

	w.logger.Info("file watcher started",
		"file", w.config.Input,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	run()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file event detected", "path", event.Name, "op", event.Op.String())
			w.debounce.Trigger(run)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop stops a running Watch and releases the fsnotify watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}

	w.debounce.Stop()
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// relevant reports whether event changed the input file's contents.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.config.Input {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// ReadExpression reads an expression file. Blank lines and lines starting
// with # are skipped, and the remaining lines are joined with spaces.
func ReadExpression(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	var parts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts = append(parts, line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return strings.Join(parts, " "), nil
}

// writeAtomic replaces path with content through a temporary file in the
// same directory.
func writeAtomic(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace output: %w", err)
	}
	return nil
}
