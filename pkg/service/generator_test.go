package service

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"mathgen-hq/mathgen/pkg/config"
	"mathgen-hq/mathgen/pkg/expr"
	"mathgen-hq/mathgen/pkg/expr/ast"
	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
	"mathgen-hq/mathgen/pkg/history"
	"mathgen-hq/mathgen/pkg/history/storage"
	"mathgen-hq/mathgen/pkg/telemetry/health"
	"mathgen-hq/mathgen/pkg/telemetry/metrics"
	"mathgen-hq/mathgen/pkg/telemetry/tracing"
)

func TestGenerator_Generate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "python with import",
			req:  Request{Expression: "2x^2 + sqrt(y)", Language: "python"},
			want: "import math\n\n2*x**2+math.sqrt(y)",
		},
		{
			name: "alias",
			req:  Request{Expression: "2x^2", Language: "js"},
			want: "2*Math.pow(x, 2)",
		},
		{
			name: "request variables",
			req:  Request{Expression: "a(b+1)", Language: "javascript", Variables: []string{"a"}},
			want: "a*(b+1)",
		},
		{
			name: "conventional order",
			req:  Request{Expression: "a-b-c", Language: "php", Conventional: true},
			want: "$a-$b-$c",
		},
	}

	gen := New(expr.Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := gen.Generate(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Output)
			assert.Positive(t, result.Nodes)
			assert.NotNil(t, result.Tree)
			assert.False(t, result.Cached)
		})
	}
}

func TestGenerator_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		wantErr  error
		wantCode string
	}{
		{"unknown language", Request{Expression: "x", Language: "cobol"}, exprErrors.ErrUnknownLanguage, "UnknownLanguage"},
		{"lexical", Request{Expression: "x $ y", Language: "python"}, exprErrors.ErrUnknownCharacter, "UnknownCharacter"},
		{"structural", Request{Expression: "(x", Language: "python"}, exprErrors.ErrUnmatchedBeginGroup, "UnmatchedBeginGroup"},
		{"print", Request{Expression: "f(x)", Language: "python"}, exprErrors.ErrUnknownFunction, "UnknownFunction"},
		{"strict", Request{Expression: "sqrt", Language: "python", Strict: true}, exprErrors.ErrUnknownConstant, "UnknownConstant"},
	}

	gen := New(expr.Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCode, ErrorCode(err))
		})
	}
}

func TestGenerator_DefaultsMerge(t *testing.T) {
	gen := New(OptionsFromConfig(config.ParserConfig{
		Variables: []string{"a"},
		MaxDepth:  1,
	}))

	result, err := gen.Generate(context.Background(), Request{Expression: "a(b) + c(d)", Language: "python", Variables: []string{"c"}})
	require.NoError(t, err)
	assert.Equal(t, "a*b+c*d", result.Code)

	_, err = gen.Generate(context.Background(), Request{Expression: "((x))", Language: "python"})
	assert.ErrorIs(t, err, exprErrors.ErrNestingTooDeep)
}

func TestGenerator_Cache(t *testing.T) {
	collector := metrics.NewCollector(config.MetricsConfig{}, nil)
	gen := New(expr.Options{}).WithMetrics(collector)
	require.NoError(t, gen.EnableCache(1))

	ctx := context.Background()
	first, err := gen.Generate(ctx, Request{Expression: "2x", Language: "python"})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := gen.Generate(ctx, Request{Expression: "2x", Language: "go"})
	require.NoError(t, err)
	assert.True(t, second.Cached, "same expression and options should hit the cache")

	third, err := gen.Generate(ctx, Request{Expression: "2x", Language: "python", Conventional: true})
	require.NoError(t, err)
	assert.False(t, third.Cached, "different parse options must not share a tree")

	expected := `
# HELP mathgen_cache_hits_total Total number of cache hits
# TYPE mathgen_cache_hits_total counter
mathgen_cache_hits_total{cache="parse"} 1
# HELP mathgen_cache_misses_total Total number of cache misses
# TYPE mathgen_cache_misses_total counter
mathgen_cache_misses_total{cache="parse"} 2
# HELP mathgen_cache_evictions_total Total number of cache evictions
# TYPE mathgen_cache_evictions_total counter
mathgen_cache_evictions_total{cache="parse"} 1
`
	err = testutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected),
		"mathgen_cache_hits_total", "mathgen_cache_misses_total", "mathgen_cache_evictions_total")
	assert.NoError(t, err)
}

func TestGenerator_Metrics(t *testing.T) {
	collector := metrics.NewCollector(config.MetricsConfig{}, nil)
	gen := New(expr.Options{}).WithMetrics(collector)

	ctx := context.Background()
	_, err := gen.Generate(ctx, Request{Expression: "x+1", Language: "python"})
	require.NoError(t, err)
	_, err = gen.Generate(ctx, Request{Expression: "(x", Language: "python"})
	require.Error(t, err)

	expected := `
# HELP mathgen_generations_total Total number of generation requests
# TYPE mathgen_generations_total counter
mathgen_generations_total{language="python",status="error"} 1
mathgen_generations_total{language="python",status="success"} 1
# HELP mathgen_stage_errors_total Total number of expressions rejected by a pipeline stage
# TYPE mathgen_stage_errors_total counter
mathgen_stage_errors_total{code="UnmatchedBeginGroup",stage="parse"} 1
`
	err = testutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected),
		"mathgen_generations_total", "mathgen_stage_errors_total")
	assert.NoError(t, err)
}

func TestGenerator_Tracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tracer, err := tracing.NewWithExporter(config.TracingConfig{Enabled: true, Sampler: "always"}, "test", exporter)
	require.NoError(t, err)
	t.Cleanup(func() { tracer.Shutdown(context.Background()) })

	gen := New(expr.Options{}).WithTracer(tracer)
	_, err = gen.Generate(context.Background(), Request{Expression: "sqrt", Language: "python", Strict: true})
	require.Error(t, err)

	names := map[string]bool{}
	for _, span := range exporter.GetSpans() {
		names[span.Name] = true
	}
	for _, want := range []string{"mathgen.generate", "mathgen.lex", "mathgen.parse", "mathgen.validate"} {
		assert.True(t, names[want], "missing span %s in %v", want, names)
	}
	assert.False(t, names["mathgen.print"], "print should not run after a validation failure")
}

func TestGenerator_History(t *testing.T) {
	store := storage.NewMemoryStorage()
	recorder := history.NewRecorder(store, nil)
	gen := New(expr.Options{}).WithRecorder(recorder)

	ctx := context.Background()
	result, err := gen.Generate(ctx, Request{Expression: "pi r^2", Language: "py", RequestID: "req-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)

	_, err = gen.Generate(ctx, Request{Expression: "f(x)", Language: "go"})
	require.Error(t, err)

	// Probes stay out of history.
	_, err = gen.GenerateFunc()(ctx, "x", "python")
	require.NoError(t, err)

	require.NoError(t, recorder.Close())

	records, err := store.Query(ctx, &history.Query{Ascending: true})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, result.ID, records[0].ID)
	assert.Equal(t, "python", records[0].Language)
	assert.Equal(t, "req-1", records[0].RequestID)
	assert.Equal(t, history.StatusSuccess, records[0].Status)
	assert.Equal(t, result.Output, records[0].Code)

	assert.Equal(t, history.StatusError, records[1].Status)
	assert.Equal(t, "UnknownFunction", records[1].ErrorCode)
	assert.NotContains(t, records[1].ErrorMessage, "\n")
}

func TestGenerator_SelfTest(t *testing.T) {
	gen := New(expr.Options{})
	check := health.SelfTestCheck(gen.GenerateFunc(), gen.Registry().Languages()...)
	assert.NoError(t, check(context.Background()))
}

func TestGenerator_Parse(t *testing.T) {
	gen := New(expr.Options{})
	node, err := gen.Parse(context.Background(), Request{Expression: "y = 2x"})
	require.NoError(t, err)
	assert.Equal(t, "equation", ast.Kind(node))

	_, err = gen.Parse(context.Background(), Request{Expression: "sqrt", Strict: true})
	assert.ErrorIs(t, err, exprErrors.ErrUnknownConstant)
}

func TestGenerator_Languages(t *testing.T) {
	languages := New(expr.Options{}).Languages()
	require.Len(t, languages, 4)

	byName := map[string][]string{}
	for _, l := range languages {
		byName[l.Name] = l.Aliases
	}
	assert.Equal(t, []string{"js", "node"}, byName["javascript"])
	assert.Equal(t, []string{"golang"}, byName["go"])
}
