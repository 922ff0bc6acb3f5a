package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// DefaultTracerName is the instrumentation name used for reveal spans.
const DefaultTracerName = "github.com/vango-dev/tooltip"

// TracerConfig configures the OpenTelemetry observer.
type TracerConfig struct {
	// TracerName is the instrumentation name (default: DefaultTracerName).
	TracerName string

	// Provider overrides the global tracer provider.
	Provider trace.TracerProvider

	// Parent is the context new spans are started from.
	// Default: context.Background()
	Parent context.Context
}

// TracerOption configures the OpenTelemetry observer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the instrumentation name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracerOption {
	return func(c *TracerConfig) {
		c.Provider = tp
	}
}

// WithParent starts reveal spans as children of the span in ctx.
func WithParent(ctx context.Context) TracerOption {
	return func(c *TracerConfig) {
		c.Parent = ctx
	}
}

// Tracer records one span per reveal cycle. The span starts with the show
// trigger, gets an event for every transition, and ends when the tooltip
// is hidden again.
type Tracer struct {
	tracer trace.Tracer
	parent context.Context

	mu    sync.Mutex
	spans map[uint64]trace.Span
}

// NewTracer creates a tracing observer.
func NewTracer(opts ...TracerOption) *Tracer {
	config := TracerConfig{
		TracerName: DefaultTracerName,
		Parent:     context.Background(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	var tracer trace.Tracer
	if config.Provider != nil {
		tracer = config.Provider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}

	return &Tracer{
		tracer: tracer,
		parent: config.Parent,
		spans:  make(map[uint64]trace.Span),
	}
}

// ObserveTransition implements tooltip.Observer.
func (t *Tracer) ObserveTransition(tr tooltip.Transition) {
	t.mu.Lock()
	defer t.mu.Unlock()

	span, ok := t.spans[tr.Instance]
	if !ok {
		if tr.To == tooltip.StateHidden {
			return
		}
		_, span = t.tracer.Start(t.parent, "tooltip.reveal",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithTimestamp(tr.At),
			trace.WithAttributes(
				attribute.String("tooltip.id", tr.ID),
				attribute.String("tooltip.position", tr.Position.String()),
			),
		)
		t.spans[tr.Instance] = span
	}

	span.AddEvent("tooltip."+tr.To.String(),
		trace.WithTimestamp(tr.At),
		trace.WithAttributes(
			attribute.String("tooltip.from", tr.From.String()),
			attribute.String("tooltip.cause", tr.Cause.String()),
		),
	)

	if tr.To != tooltip.StateHidden {
		return
	}

	revealed := tr.From == tooltip.StateVisible
	span.SetAttributes(
		attribute.Bool("tooltip.revealed", revealed),
		attribute.Bool("tooltip.cancelled", tr.Cancelled),
		attribute.String("tooltip.end_cause", tr.Cause.String()),
	)
	if revealed {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(tr.At))
	delete(t.spans, tr.Instance)
}

// ActiveSpans returns the number of reveal cycles still open.
func (t *Tracer) ActiveSpans() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.spans)
}
