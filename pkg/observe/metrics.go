package observe

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "tooltip").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for visible duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "tooltip",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records tooltip transitions and HTTP requests in Prometheus.
type Metrics struct {
	transitions     *prometheus.CounterVec
	cancelled       prometheus.Counter
	visible         prometheus.Gauge
	visibleDuration *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec

	mu      sync.Mutex
	shownAt map[uint64]time.Time
}

// NewMetrics registers the tooltip metrics.
// It panics if they are already registered on the chosen registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transitions_total",
			Help:        "Tooltip state transitions by target state, cause and position",
			ConstLabels: config.ConstLabels,
		}, []string{"to", "cause", "position"}),

		cancelled: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cancelled_total",
			Help:        "Reveals cancelled before their delay elapsed",
			ConstLabels: config.ConstLabels,
		}),

		visible: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "visible",
			Help:        "Number of tooltips currently visible",
			ConstLabels: config.ConstLabels,
		}),

		visibleDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "visible_duration_seconds",
			Help:        "How long tooltip labels stayed visible",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"position"}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "HTTP requests by route pattern and status class",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),

		shownAt: make(map[uint64]time.Time),
	}
}

// ObserveTransition implements tooltip.Observer.
func (m *Metrics) ObserveTransition(tr tooltip.Transition) {
	m.transitions.WithLabelValues(tr.To.String(), tr.Cause.String(), tr.Position.String()).Inc()

	if tr.Cancelled {
		m.cancelled.Inc()
	}

	switch {
	case tr.To == tooltip.StateVisible:
		m.visible.Inc()
		m.mu.Lock()
		m.shownAt[tr.Instance] = tr.At
		m.mu.Unlock()

	case tr.From == tooltip.StateVisible:
		m.visible.Dec()
		m.mu.Lock()
		start, ok := m.shownAt[tr.Instance]
		delete(m.shownAt, tr.Instance)
		m.mu.Unlock()
		if ok {
			m.visibleDuration.WithLabelValues(tr.Position.String()).Observe(tr.At.Sub(start).Seconds())
		}
	}
}

// Middleware counts HTTP requests by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		m.httpRequests.WithLabelValues(route, strconv.Itoa(sw.status/100)+"xx").Inc()
	})
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrade take over the connection.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("observe: response writer does not support hijacking")
	}
	return h.Hijack()
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Multi combines observers. Nil entries are skipped.
func Multi(observers ...tooltip.Observer) tooltip.Observer {
	var list []tooltip.Observer
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return tooltip.ObserverFunc(func(tr tooltip.Transition) {
		for _, o := range list {
			o.ObserveTransition(tr)
		}
	})
}
