package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mathgen-hq/mathgen/pkg/config"
	"mathgen-hq/mathgen/pkg/expr"
	"mathgen-hq/mathgen/pkg/expr/ast"
	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
	"mathgen-hq/mathgen/pkg/expr/printer"
	"mathgen-hq/mathgen/pkg/history"
	"mathgen-hq/mathgen/pkg/telemetry/health"
	"mathgen-hq/mathgen/pkg/telemetry/metrics"
	"mathgen-hq/mathgen/pkg/telemetry/tracing"
)

// Pipeline stage names used for spans and metrics.
const (
	StageLex      = "lex"
	StageParse    = "parse"
	StageValidate = "validate"
	StagePrint    = "print"
)

const parseCacheName = "parse"

// Request is a single generation request. Variables, Conventional and
// Strict add to the generator's defaults.
type Request struct {
	Expression   string   `json:"expression" yaml:"expression"`
	Language     string   `json:"language" yaml:"language"`
	Variables    []string `json:"variables,omitempty" yaml:"variables,omitempty"`
	Conventional bool     `json:"conventional,omitempty" yaml:"conventional,omitempty"`
	Strict       bool     `json:"strict,omitempty" yaml:"strict,omitempty"`
	RequestID    string   `json:"-" yaml:"-"`
}

// Result is the outcome of a successful generation.
type Result struct {
	ID       string        `json:"id" yaml:"id"`
	Language string        `json:"language" yaml:"language"`
	Code     string        `json:"code" yaml:"code"`
	Imports  []string      `json:"imports,omitempty" yaml:"imports,omitempty"`
	Output   string        `json:"output" yaml:"output"`
	Nodes    int           `json:"nodes" yaml:"nodes"`
	Cached   bool          `json:"cached" yaml:"cached"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Tree     ast.Node      `json:"-" yaml:"-"`
}

// Generator runs the lex, parse, validate and print stages.
// It is safe for concurrent use.
type Generator struct {
	defaults expr.Options
	registry *printer.Registry
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	recorder *history.Recorder
	cache    *lru.Cache
	logger   *slog.Logger
}

// OptionsFromConfig converts parser configuration into expression options.
func OptionsFromConfig(cfg config.ParserConfig) expr.Options {
	return expr.Options{
		Variables:    cfg.Variables,
		Conventional: cfg.ConventionalPrecedence,
		Strict:       cfg.Strict,
		MaxDepth:     cfg.MaxDepth,
	}
}

// New creates a generator using the built-in printers and no cache.
func New(defaults expr.Options) *Generator {
	return &Generator{
		defaults: defaults,
		registry: printer.Default(),
		tracer:   tracing.Noop(),
		logger:   slog.Default().With("component", "service"),
	}
}

// WithRegistry replaces the printer registry.
func (g *Generator) WithRegistry(registry *printer.Registry) *Generator {
	g.registry = registry
	return g
}

// WithMetrics sets the metrics collector.
func (g *Generator) WithMetrics(collector *metrics.Collector) *Generator {
	g.metrics = collector
	return g
}

// WithTracer sets the tracer.
func (g *Generator) WithTracer(tracer *tracing.Tracer) *Generator {
	if tracer == nil {
		tracer = tracing.Noop()
	}
	g.tracer = tracer
	return g
}

// WithRecorder sets the history recorder. Nil disables history.
func (g *Generator) WithRecorder(recorder *history.Recorder) *Generator {
	g.recorder = recorder
	return g
}

// WithLogger replaces the logger.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.logger = logger
	return g
}

// EnableCache keeps up to size parse trees in an LRU cache. A size of zero
// or less disables caching.
func (g *Generator) EnableCache(size int) error {
	if size <= 0 {
		g.cache = nil
		return nil
	}
	cache, err := lru.NewWithEvict(size, func(key, value interface{}) {
		g.metrics.RecordCacheEviction(parseCacheName)
	})
	if err != nil {
		return fmt.Errorf("failed to create parse cache: %w", err)
	}
	g.cache = cache
	return nil
}

// Registry returns the printer registry.
func (g *Generator) Registry() *printer.Registry {
	return g.registry
}

// Defaults returns the default expression options.
func (g *Generator) Defaults() expr.Options {
	return g.defaults
}

// Generate runs the full pipeline and records the outcome in history.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	return g.generate(ctx, req, g.recorder)
}

// GenerateFunc adapts the generator for health.SelfTestCheck. Probes are not
// written to history.
func (g *Generator) GenerateFunc() health.GenerateFunc {
	return func(ctx context.Context, text, language string) (string, error) {
		result, err := g.generate(ctx, Request{Expression: text, Language: language}, nil)
		if err != nil {
			return "", err
		}
		return result.Output, nil
	}
}

func (g *Generator) generate(ctx context.Context, req Request, recorder *history.Recorder) (result *Result, err error) {
	start := time.Now()
	opts := g.options(req)

	ctx, span := g.tracer.Start(ctx, "mathgen.generate", tracing.NewAttributeBuilder().
		WithLanguage(req.Language).
		WithRequestID(req.RequestID).
		WithSource(req.Expression).
		WithVariables(opts.Variables).
		Build())

	record := &history.Record{
		RequestID:  req.RequestID,
		Expression: req.Expression,
		Language:   req.Language,
		Variables:  opts.Variables,
	}

	defer func() {
		duration := time.Since(start)
		status := history.StatusSuccess
		if err != nil {
			status = history.StatusError
			record.ErrorCode = ErrorCode(err)
			record.ErrorMessage = firstLine(err.Error())
		} else {
			result.Duration = duration
			record.Code = result.Output
			record.Nodes = result.Nodes
		}
		record.Status = status
		record.Duration = duration

		g.metrics.RecordGeneration(record.Language, string(status), duration, record.Nodes)
		tracing.End(span, err)

		if recorder != nil {
			if recErr := recorder.Record(record); recErr != nil {
				g.logger.Warn("failed to record history", "error", recErr)
			} else if result != nil {
				result.ID = record.ID
			}
		}

		g.logger.Debug("generation finished",
			"language", record.Language,
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"error_code", record.ErrorCode,
		)
	}()

	p, err := g.registry.Get(req.Language)
	if err != nil {
		return nil, err
	}
	record.Language = p.Language()
	span.SetAttributes(attribute.String(tracing.AttrLanguage, p.Language()))

	node, cached, err := g.parse(ctx, req.Expression, opts)
	if err != nil {
		return nil, err
	}

	if opts.Strict {
		if err := g.validate(ctx, req.Expression, node); err != nil {
			return nil, err
		}
	}

	printed, err := g.print(ctx, p, req.Expression, node)
	if err != nil {
		return nil, err
	}

	return &Result{
		Language: printed.Language,
		Code:     printed.Code,
		Imports:  printed.Imports,
		Output:   printed.String(),
		Nodes:    ast.Count(node),
		Cached:   cached,
		Tree:     node,
	}, nil
}

// Parse lexes and parses text with the request's options applied over the
// defaults. Strict requests are validated as well.
func (g *Generator) Parse(ctx context.Context, req Request) (ast.Node, error) {
	opts := g.options(req)
	node, _, err := g.parse(ctx, req.Expression, opts)
	if err != nil {
		return nil, err
	}
	if opts.Strict {
		if err := g.validate(ctx, req.Expression, node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// Languages describes the registered printers.
func (g *Generator) Languages() []Language {
	names := g.registry.Languages()
	languages := make([]Language, 0, len(names))
	for _, name := range names {
		languages = append(languages, Language{Name: name, Aliases: g.registry.Aliases(name)})
	}
	return languages
}

// Language describes one printer.
type Language struct {
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

func (g *Generator) parse(ctx context.Context, text string, opts expr.Options) (ast.Node, bool, error) {
	key := cacheKey(text, opts)
	if g.cache != nil {
		if value, ok := g.cache.Get(key); ok {
			g.metrics.RecordCacheHit(parseCacheName)
			return value.(ast.Node), true, nil
		}
		g.metrics.RecordCacheMiss(parseCacheName)
	}

	stageStart := time.Now()
	_, lexSpan := g.tracer.StartStage(ctx, StageLex)
	tokens, err := expr.Lex(text)
	lexSpan.SetAttributes(attribute.Int(tracing.AttrTokens, len(tokens)))
	g.finishStage(lexSpan, StageLex, stageStart, err)
	if err != nil {
		return nil, false, err
	}

	stageStart = time.Now()
	_, parseSpan := g.tracer.StartStage(ctx, StageParse)
	node, err := opts.NewParser().Parse(tokens)
	err = exprErrors.WithSource(err, text)
	if err == nil {
		parseSpan.SetAttributes(attribute.Int(tracing.AttrNodes, ast.Count(node)))
	}
	g.finishStage(parseSpan, StageParse, stageStart, err)
	if err != nil {
		return nil, false, err
	}

	if g.cache != nil {
		g.cache.Add(key, node)
		g.metrics.UpdateCacheSize(parseCacheName, g.cache.Len())
	}
	return node, false, nil
}

func (g *Generator) validate(ctx context.Context, text string, node ast.Node) error {
	stageStart := time.Now()
	_, span := g.tracer.StartStage(ctx, StageValidate)
	err := exprErrors.WithSource(expr.Validate(node), text)
	g.finishStage(span, StageValidate, stageStart, err)
	return err
}

func (g *Generator) print(ctx context.Context, p printer.Printer, text string, node ast.Node) (*printer.Result, error) {
	stageStart := time.Now()
	_, span := g.tracer.StartStage(ctx, StagePrint)
	result, err := p.Print(node)
	err = exprErrors.WithSource(err, text)
	g.finishStage(span, StagePrint, stageStart, err)
	return result, err
}

func (g *Generator) finishStage(span trace.Span, stage string, start time.Time, err error) {
	g.metrics.RecordStage(stage, time.Since(start))
	if err != nil {
		g.metrics.RecordStageError(stage, ErrorCode(err))
	}
	tracing.End(span, err)
}

func (g *Generator) options(req Request) expr.Options {
	opts := g.defaults
	if len(req.Variables) > 0 {
		merged := make([]string, 0, len(opts.Variables)+len(req.Variables))
		merged = append(merged, opts.Variables...)
		merged = append(merged, req.Variables...)
		opts.Variables = merged
	}
	opts.Conventional = opts.Conventional || req.Conventional
	opts.Strict = opts.Strict || req.Strict
	return opts
}

func cacheKey(text string, opts expr.Options) string {
	vars := append([]string(nil), opts.Variables...)
	sort.Strings(vars)
	return fmt.Sprintf("%t|%d|%s|%s", opts.Conventional, opts.MaxDepth, strings.Join(vars, ","), text)
}

// ErrorCode returns the code of the first expression error in err, or
// "Internal" when err carries none.
func ErrorCode(err error) string {
	var list *exprErrors.ErrorList
	if errors.As(err, &list) && list.Count() > 0 {
		return string(list.Errors[0].Code)
	}
	var exprErr *exprErrors.Error
	if errors.As(err, &exprErr) {
		return string(exprErr.Code)
	}
	return "Internal"
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
