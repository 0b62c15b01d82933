package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"mathgen-hq/mathgen/pkg/config"
	"mathgen-hq/mathgen/pkg/expr/ast"
	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
)

func newTestTracer(t *testing.T) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tracer, err := NewWithExporter(config.TracingConfig{Enabled: true, Sampler: SamplerAlways}, "test", exporter)
	if err != nil {
		t.Fatalf("NewWithExporter() error = %v", err)
	}
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })
	return tracer, exporter
}

func attr(spanAttrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range spanAttrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestNew_Disabled(t *testing.T) {
	tracer, err := New(config.TracingConfig{Enabled: false}, "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tracer.Enabled() {
		t.Error("expected disabled tracer")
	}

	ctx, span := tracer.Start(context.Background(), "noop")
	span.End()
	if TraceID(ctx) != "" {
		t.Error("expected no trace ID from noop tracer")
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewWithExporter_InvalidSampler(t *testing.T) {
	_, err := NewWithExporter(config.TracingConfig{Enabled: true, Sampler: "sometimes"}, "test", tracetest.NewInMemoryExporter())
	if err == nil {
		t.Fatal("expected sampler error")
	}
}

func TestNilTracer(t *testing.T) {
	var tracer *Tracer
	_, span := tracer.StartStage(context.Background(), "lex")
	End(span, nil)

	if tracer.Enabled() {
		t.Error("nil tracer should be disabled")
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestStartStage(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	ctx, parent := tracer.Start(context.Background(), "generate")
	_, child := tracer.StartStage(ctx, "parse", attribute.String(AttrLanguage, "go"))
	End(child, nil)
	End(parent, nil)

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	stage := spans[0]
	if stage.Name != "mathgen.parse" {
		t.Errorf("expected span name mathgen.parse, got %q", stage.Name)
	}
	if stage.Parent.SpanID() != spans[1].SpanContext.SpanID() {
		t.Error("expected stage span to be a child of the generate span")
	}
	if v, ok := attr(stage.Attributes, AttrStage); !ok || v.AsString() != "parse" {
		t.Errorf("expected stage attribute, got %v", stage.Attributes)
	}
	if stage.Status.Code != codes.Ok {
		t.Errorf("expected OK status, got %v", stage.Status.Code)
	}
}

func TestEnd_ExpressionError(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	_, span := tracer.StartStage(context.Background(), "parse")
	End(span, exprErrors.NewUnmatchedBeginGroup(4))

	got := exporter.GetSpans()[0]
	if got.Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", got.Status.Code)
	}
	if v, ok := attr(got.Attributes, AttrErrorCode); !ok || v.AsString() != string(exprErrors.CodeUnmatchedBeginGroup) {
		t.Errorf("expected error code attribute, got %v", got.Attributes)
	}
	if v, ok := attr(got.Attributes, AttrErrorPos); !ok || v.AsInt64() != 4 {
		t.Errorf("expected error position 4, got %v", got.Attributes)
	}
	if len(got.Events) == 0 || got.Events[0].Name != "exception" {
		t.Error("expected an exception event")
	}
}

func TestEnd_ErrorList(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	list := exprErrors.NewErrorList()
	list.Add(exprErrors.NewUnknownFunction("foo", ast.Position(0), nil))
	list.Add(exprErrors.NewUnknownFunction("bar", ast.Position(7), nil))

	_, span := tracer.StartStage(context.Background(), "validate")
	End(span, list)

	got := exporter.GetSpans()[0]
	if v, ok := attr(got.Attributes, AttrErrorCount); !ok || v.AsInt64() != 2 {
		t.Errorf("expected error count 2, got %v", got.Attributes)
	}
}

func TestEnd_PlainError(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	_, span := tracer.Start(context.Background(), "write")
	End(span, errors.New("disk full"))

	got := exporter.GetSpans()[0]
	if got.Status.Description != "disk full" {
		t.Errorf("expected status description, got %q", got.Status.Description)
	}
	if _, ok := attr(got.Attributes, AttrErrorCode); ok {
		t.Error("plain errors should not carry an expression error code")
	}
}

func TestAttributeBuilder(t *testing.T) {
	attrs := NewAttributeBuilder().
		WithLanguage("python").
		WithRequestID("").
		WithSource("αβ+1").
		WithVariables([]string{"a", "b"}).
		WithCache(true).
		Attributes()

	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d: %v", len(attrs), attrs)
	}
	if v, _ := attr(attrs, AttrSourceLen); v.AsInt64() != 4 {
		t.Errorf("expected source length in runes, got %v", v.AsInt64())
	}
}

func TestHTTPMiddleware(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	var inner string
	handler := HTTPMiddleware(tracer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = TraceID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/generate", nil))

	if inner == "" {
		t.Fatal("expected a trace ID inside the handler")
	}
	if got := rec.Header().Get(TraceIDHeader); got != inner {
		t.Errorf("expected %s header %q, got %q", TraceIDHeader, inner, got)
	}
	if spans := exporter.GetSpans(); len(spans) != 1 || spans[0].Name != "POST /v1/generate" {
		t.Errorf("unexpected spans: %v", spans)
	}
}
