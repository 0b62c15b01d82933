package tracing

import (
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
)

// Attribute keys used on mathgen spans. Custom keys use the "mathgen.*"
// namespace.
const (
	AttrStage      = "mathgen.stage"
	AttrLanguage   = "mathgen.language"
	AttrRequestID  = "mathgen.request_id"
	AttrSourceLen  = "mathgen.source.length"
	AttrTokens     = "mathgen.tokens"
	AttrNodes      = "mathgen.nodes"
	AttrVariables  = "mathgen.variables"
	AttrCacheHit   = "mathgen.cache.hit"
	AttrErrorType  = "mathgen.error.type"
	AttrErrorCode  = "mathgen.error.code"
	AttrErrorPos   = "mathgen.error.position"
	AttrErrorCount = "mathgen.error.count"
)

// RecordError marks the span as failed. Expression errors also carry their
// type, code and position. Error lists record every entry and their count.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var list *exprErrors.ErrorList
	if errors.As(err, &list) {
		span.SetAttributes(attribute.Int(AttrErrorCount, list.Count()))
		if list.Count() > 0 {
			setExprError(span, list.Errors[0])
		}
		return
	}

	var exprErr *exprErrors.Error
	if errors.As(err, &exprErr) {
		setExprError(span, exprErr)
	}
}

func setExprError(span trace.Span, err *exprErrors.Error) {
	span.SetAttributes(
		attribute.String(AttrErrorType, string(err.Type)),
		attribute.String(AttrErrorCode, string(err.Code)),
	)
	if err.Position.IsValid() {
		span.SetAttributes(attribute.Int(AttrErrorPos, int(err.Position)))
	}
}

// End records err on the span, sets an OK status on success and ends it.
//
//	ctx, span := tracer.StartStage(ctx, "parse")
//	node, err := p.Parse(tokens)
//	tracing.End(span, err)
func End(span trace.Span, err error) {
	if err != nil {
		RecordError(span, err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AttributeBuilder provides a fluent interface for building span attributes.
type AttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewAttributeBuilder creates a new attribute builder.
func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 8),
	}
}

// WithLanguage adds the target language.
func (ab *AttributeBuilder) WithLanguage(language string) *AttributeBuilder {
	if language != "" {
		ab.attrs = append(ab.attrs, attribute.String(AttrLanguage, language))
	}
	return ab
}

// WithRequestID adds the request ID when present.
func (ab *AttributeBuilder) WithRequestID(requestID string) *AttributeBuilder {
	if requestID != "" {
		ab.attrs = append(ab.attrs, attribute.String(AttrRequestID, requestID))
	}
	return ab
}

// WithSource adds the length of the expression text in runes.
func (ab *AttributeBuilder) WithSource(text string) *AttributeBuilder {
	ab.attrs = append(ab.attrs, attribute.Int(AttrSourceLen, len([]rune(text))))
	return ab
}

// WithVariables adds the declared variable names.
func (ab *AttributeBuilder) WithVariables(names []string) *AttributeBuilder {
	if len(names) > 0 {
		ab.attrs = append(ab.attrs, attribute.StringSlice(AttrVariables, names))
	}
	return ab
}

// WithCache adds whether the parse cache served the request.
func (ab *AttributeBuilder) WithCache(hit bool) *AttributeBuilder {
	ab.attrs = append(ab.attrs, attribute.Bool(AttrCacheHit, hit))
	return ab
}

// Build returns the built attributes as a trace.SpanStartOption.
func (ab *AttributeBuilder) Build() trace.SpanStartOption {
	return trace.WithAttributes(ab.attrs...)
}

// Apply applies the attributes to a span.
func (ab *AttributeBuilder) Apply(span trace.Span) {
	span.SetAttributes(ab.attrs...)
}

// Attributes returns the raw attribute slice.
func (ab *AttributeBuilder) Attributes() []attribute.KeyValue {
	return ab.attrs
}
