// Package observe provides tooltip.Observer implementations backed by
// Prometheus and OpenTelemetry, plus HTTP request metrics for the server.
//
// Metrics collected (namespace "tooltip" by default):
//   - tooltip_transitions_total: counter by target state, cause and position
//   - tooltip_cancelled_total: reveals cancelled before their delay elapsed
//   - tooltip_visible: gauge of currently visible tooltips
//   - tooltip_visible_duration_seconds: how long labels stayed visible
//   - tooltip_http_requests_total: HTTP requests by route and status class
//
// Example:
//
//	m := observe.NewMetrics(observe.WithRegistry(reg))
//	tr := observe.NewTracer()
//	tip := tooltip.New("Save", tooltip.WithObserver(observe.Multi(m, tr)))
//
// The tracer uses the global OpenTelemetry tracer provider unless one is
// given with WithTracerProvider. One span covers a reveal cycle, from the
// show trigger until the tooltip is hidden again.
package observe
