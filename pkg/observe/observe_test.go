package observe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/tooltip/pkg/clock"
	"github.com/vango-dev/tooltip/pkg/loop"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// gathered returns the value of a counter or gauge sample whose labels
// include all of want.
func gathered(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue next
				}
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				return g.GetValue()
			}
			if h := m.GetHistogram(); h != nil {
				return float64(h.GetSampleCount())
			}
		}
	}
	return 0
}

func newObserved(obs tooltip.Observer, opts ...tooltip.Option) (*tooltip.Tooltip, *clock.Fake) {
	c := clock.NewFake(epoch)
	opts = append([]tooltip.Option{
		tooltip.WithClock(c),
		tooltip.WithDispatcher(loop.Inline),
		tooltip.WithObserver(obs),
	}, opts...)
	return tooltip.New("Save", opts...), c
}

func TestMetrics_RecordsRevealCycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	tip, c := newObserved(m, tooltip.WithID("save"), tooltip.WithPosition(tooltip.PositionBottom))
	tip.Show()
	c.Advance(tooltip.DefaultDelay)

	if got := gathered(t, reg, "tooltip_visible", nil); got != 1 {
		t.Errorf("visible gauge = %v, want 1", got)
	}

	c.Advance(2 * time.Second)
	tip.Hide()

	if got := gathered(t, reg, "tooltip_visible", nil); got != 0 {
		t.Errorf("visible gauge = %v, want 0", got)
	}
	if got := gathered(t, reg, "tooltip_transitions_total", map[string]string{"to": "visible", "cause": "timer", "position": "bottom"}); got != 1 {
		t.Errorf("reveal transitions = %v, want 1", got)
	}
	if got := gathered(t, reg, "tooltip_transitions_total", map[string]string{"to": "hidden", "cause": "hide"}); got != 1 {
		t.Errorf("hide transitions = %v, want 1", got)
	}
	if got := gathered(t, reg, "tooltip_visible_duration_seconds", map[string]string{"position": "bottom"}); got != 1 {
		t.Errorf("duration samples = %v, want 1", got)
	}
	if got := gathered(t, reg, "tooltip_cancelled_total", nil); got != 0 {
		t.Errorf("cancelled = %v, want 0", got)
	}
}

func TestMetrics_CountsCancelledReveal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("ui"), WithSubsystem("hint"))

	tip, c := newObserved(m)
	tip.Show()
	c.Advance(100 * time.Millisecond)
	tip.Hide()

	if got := gathered(t, reg, "ui_hint_cancelled_total", nil); got != 1 {
		t.Errorf("cancelled = %v, want 1", got)
	}
	if got := gathered(t, reg, "ui_hint_visible", nil); got != 0 {
		t.Errorf("visible gauge = %v, want 0", got)
	}
}

func TestMetrics_MiddlewareUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := gathered(t, reg, "tooltip_http_requests_total", map[string]string{"route": "/items/{id}", "status": "4xx"}); got != 2 {
		t.Errorf("route requests = %v, want 2", got)
	}
	if got := gathered(t, reg, "tooltip_http_requests_total", map[string]string{"route": "unmatched", "status": "4xx"}); got != 1 {
		t.Errorf("unmatched requests = %v, want 1", got)
	}
}

// recordingProvider captures spans started by the observer.
type recordingProvider struct {
	noop.TracerProvider
	tracer *recordingTracer
}

func (p recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return p.tracer
}

type recordingTracer struct {
	noop.Tracer
	spans []*recordingSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordingSpan{name: name, attrs: cfg.Attributes()}
	t.spans = append(t.spans, s)
	return ctx, s
}

type recordingSpan struct {
	noop.Span
	name   string
	attrs  []attribute.KeyValue
	events []string
	status codes.Code
	ended  bool
}

func (s *recordingSpan) AddEvent(name string, _ ...trace.EventOption) {
	s.events = append(s.events, name)
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	s.attrs = append(s.attrs, kv...)
}

func (s *recordingSpan) SetStatus(code codes.Code, _ string) {
	s.status = code
}

func (s *recordingSpan) End(...trace.SpanEndOption) {
	s.ended = true
}

func (s *recordingSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracer_SpanPerRevealCycle(t *testing.T) {
	rt := &recordingTracer{}
	tr := NewTracer(WithTracerProvider(recordingProvider{tracer: rt}))

	tip, c := newObserved(tr, tooltip.WithID("save"), tooltip.WithPosition(tooltip.PositionRight))
	tip.Show()
	if tr.ActiveSpans() != 1 {
		t.Fatalf("active spans = %d, want 1", tr.ActiveSpans())
	}
	c.Advance(tooltip.DefaultDelay)
	tip.Hide()

	if len(rt.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(rt.spans))
	}
	s := rt.spans[0]
	if s.name != "tooltip.reveal" || !s.ended {
		t.Errorf("span %q ended=%v", s.name, s.ended)
	}
	want := []string{"tooltip.pending", "tooltip.visible", "tooltip.hidden"}
	if len(s.events) != len(want) {
		t.Fatalf("events = %v, want %v", s.events, want)
	}
	for i := range want {
		if s.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, s.events[i], want[i])
		}
	}
	if v, ok := s.attr("tooltip.position"); !ok || v.AsString() != "right" {
		t.Errorf("position attribute = %v", v)
	}
	if v, ok := s.attr("tooltip.revealed"); !ok || !v.AsBool() {
		t.Errorf("revealed attribute = %v", v)
	}
	if s.status != codes.Ok {
		t.Errorf("status = %v, want Ok", s.status)
	}
	if tr.ActiveSpans() != 0 {
		t.Errorf("active spans = %d after hide", tr.ActiveSpans())
	}
}

func TestTracer_CancelledCycle(t *testing.T) {
	rt := &recordingTracer{}
	tr := NewTracer(WithTracerProvider(recordingProvider{tracer: rt}))

	tip, c := newObserved(tr)
	tip.Show()
	c.Advance(50 * time.Millisecond)
	tip.Unmount()

	if len(rt.spans) != 1 || !rt.spans[0].ended {
		t.Fatalf("spans = %+v", rt.spans)
	}
	s := rt.spans[0]
	if v, _ := s.attr("tooltip.cancelled"); !v.AsBool() {
		t.Error("cancelled attribute not set")
	}
	if v, _ := s.attr("tooltip.end_cause"); v.AsString() != "unmount" {
		t.Errorf("end cause = %q", v.AsString())
	}
	if s.status == codes.Ok {
		t.Error("cancelled cycle should not be marked Ok")
	}
}

func TestMulti_FansOutAndSkipsNil(t *testing.T) {
	var a, b int
	obs := Multi(
		tooltip.ObserverFunc(func(tooltip.Transition) { a++ }),
		nil,
		tooltip.ObserverFunc(func(tooltip.Transition) { b++ }),
	)

	tip, c := newObserved(obs)
	tip.Show()
	c.Advance(tooltip.DefaultDelay)

	if a != 2 || b != 2 {
		t.Errorf("a=%d b=%d, want 2 each", a, b)
	}
}

func histogramSum(t *testing.T, reg *prometheus.Registry, name string) (uint64, float64) {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var count uint64
	var sum float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if h := m.GetHistogram(); h != nil {
				count += h.GetSampleCount()
				sum += h.GetSampleSum()
			}
		}
	}
	return count, sum
}

func TestObservers_SameIDAcrossSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	rt := &recordingTracer{}
	tr := NewTracer(WithTracerProvider(recordingProvider{tracer: rt}))
	obs := Multi(m, tr)

	c := clock.NewFake(epoch)
	opts := []tooltip.Option{
		tooltip.WithID("tip-save"),
		tooltip.WithClock(c),
		tooltip.WithDispatcher(loop.Inline),
		tooltip.WithObserver(obs),
	}
	first := tooltip.New("Save", opts...)
	second := tooltip.New("Save", opts...)

	first.Show()
	second.Show()
	c.Advance(tooltip.DefaultDelay)
	if tr.ActiveSpans() != 2 {
		t.Fatalf("active spans = %d, want 2", tr.ActiveSpans())
	}
	if got := gathered(t, reg, "tooltip_visible", nil); got != 2 {
		t.Errorf("visible gauge = %v, want 2", got)
	}

	c.Advance(time.Second)
	first.Hide()
	if tr.ActiveSpans() != 1 {
		t.Errorf("active spans = %d after first hide, want 1", tr.ActiveSpans())
	}
	if rt.spans[1].ended {
		t.Error("hiding one tooltip ended the other's span")
	}

	c.Advance(time.Second)
	second.Hide()

	count, sum := histogramSum(t, reg, "tooltip_visible_duration_seconds")
	if count != 2 || sum != 3 {
		t.Errorf("duration samples = %d sum = %v, want 2 and 3", count, sum)
	}
	if len(rt.spans) != 2 || !rt.spans[0].ended || !rt.spans[1].ended {
		t.Errorf("spans = %d, want 2 ended", len(rt.spans))
	}
}
