package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// CheckMeta identifies one health-check execution for telemetry purposes.
type CheckMeta struct {
	Run       string // Aggregation run ID the check belongs to (may be empty)
	Probe     string // Probe name (required)
	Component string // Component the probe covers (optional)
}

// SpanName returns the deterministic span name for this check.
// Format: health.check.<probe>
func (m CheckMeta) SpanName() string {
	return "health.check." + m.Probe
}

// Tracer wraps OpenTelemetry tracing with check-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: StartCheck must honor cancellation/deadlines.
// - Errors: EndCheck must be best-effort and must not panic.
type Tracer interface {
	// StartCheck starts a new span for a probe check.
	StartCheck(ctx context.Context, meta CheckMeta) (context.Context, trace.Span)

	// EndCheck ends the span, recording any error.
	EndCheck(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartCheck starts a new span with check metadata as attributes.
func (t *tracerImpl) StartCheck(ctx context.Context, meta CheckMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("check.probe", meta.Probe),
		attribute.Bool("check.error", false), // Updated in EndCheck on error
	}
	if meta.Run != "" {
		attrs = append(attrs, attribute.String("check.run", meta.Run))
	}
	if meta.Component != "" {
		attrs = append(attrs, attribute.String("check.component", meta.Component))
	}

	ctx, span := t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	return ctx, span
}

// EndCheck ends the span and records the error status if present.
func (t *tracerImpl) EndCheck(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("check.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// nopTracer is a tracer that does nothing.
type nopTracer struct {
	noop trace.Tracer
}

// NewNopTracer creates a tracer that records nothing.
func NewNopTracer() Tracer {
	return &nopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *nopTracer) StartCheck(ctx context.Context, meta CheckMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *nopTracer) EndCheck(span trace.Span, err error) {
	span.End()
}
