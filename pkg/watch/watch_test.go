package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mathgen-hq/mathgen/pkg/expr"
	"mathgen-hq/mathgen/pkg/service"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDebouncer_CollapsesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("callback ran %d times, want 1", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("callback ran %d times after Stop, want 0", got)
	}
}

func TestReadExpression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "area.math")
	writeFile(t, path, "# circle area\n\npi r^2\n  + 1\n")

	got, err := ReadExpression(path)
	if err != nil {
		t.Fatalf("ReadExpression() failed: %v", err)
	}
	if got != "pi r^2 + 1" {
		t.Errorf("ReadExpression() = %q, want %q", got, "pi r^2 + 1")
	}

	if _, err := ReadExpression(filepath.Join(t.TempDir(), "missing.math")); err == nil {
		t.Error("ReadExpression() on a missing file should fail")
	}
}

func TestNew_Validation(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.math")
	writeFile(t, input, "x")
	gen := service.New(expr.Options{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "no input", cfg: Config{Language: "python"}},
		{name: "no language", cfg: Config{Input: input}},
		{name: "missing input", cfg: Config{Input: filepath.Join(dir, "nope.math"), Language: "python"}},
		{name: "input is a directory", cfg: Config{Input: dir, Language: "python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg, gen); err == nil {
				t.Error("New() should fail")
			}
		})
	}
}

func TestWatcher_Regenerate(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.math")
	output := filepath.Join(dir, "out.py")
	writeFile(t, input, "2x^2")

	w, err := New(Config{Input: input, Output: output, Language: "python"}, service.New(expr.Options{}))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Stop()

	if _, err := w.Regenerate(context.Background()); err != nil {
		t.Fatalf("Regenerate() failed: %v", err)
	}
	got, _ := os.ReadFile(output)
	if string(got) != "2*x**2\n" {
		t.Errorf("output = %q, want %q", got, "2*x**2\n")
	}

	// A broken expression keeps the previous output.
	writeFile(t, input, "(2x")
	if _, err := w.Regenerate(context.Background()); err == nil {
		t.Fatal("Regenerate() should fail for unbalanced input")
	}
	got, _ = os.ReadFile(output)
	if string(got) != "2*x**2\n" {
		t.Errorf("output after failure = %q, want previous output", got)
	}
}

func TestWatcher_Watch(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.math")
	output := filepath.Join(dir, "out.js")
	writeFile(t, input, "sqrt(x)")

	w, err := New(Config{
		Input:    input,
		Output:   output,
		Language: "javascript",
		Debounce: 20 * time.Millisecond,
	}, service.New(expr.Options{}))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	var mu sync.Mutex
	var outputs []string
	results := make(chan struct{}, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(result *service.Result, err error) {
			if err == nil {
				mu.Lock()
				outputs = append(outputs, result.Output)
				mu.Unlock()
			}
			results <- struct{}{}
		})
	}()

	waitResult := func() {
		t.Helper()
		select {
		case <-results:
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for regeneration")
		}
	}

	// Initial generation.
	waitResult()

	writeFile(t, input, "abs(x)")
	waitResult()

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Watch() returned %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(outputs) < 2 || outputs[0] != "Math.sqrt(x)" || outputs[len(outputs)-1] != "Math.abs(x)" {
		t.Errorf("outputs = %v", outputs)
	}
	got, _ := os.ReadFile(output)
	if strings.TrimSpace(string(got)) != "Math.abs(x)" {
		t.Errorf("output file = %q", got)
	}
}
