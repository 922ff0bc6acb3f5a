package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Config holds server settings.
type Config struct {
	// Address is the listen address (host:port).
	Address string

	// Title is the demo page title.
	Title string

	// ReadTimeout bounds the wait for the next client message.
	// Pongs extend it, so idle but live clients stay connected.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single WebSocket write.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between pings.
	HeartbeatInterval time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// MaxEventQueue is the per-session dispatch queue size.
	MaxEventQueue int

	// Tooltip options apply to every demo tooltip, e.g.
	// tooltip.WithDelay or tooltip.WithClock. The session's dispatcher,
	// logger and observers are added after them.
	Tooltip []tooltip.Option

	// Position anchors the demo's "Save" tooltip. The position gallery
	// always shows all four.
	Position tooltip.Position

	// Registry enables /metrics and transition metrics when set.
	Registry *prometheus.Registry

	// Tracing records a span per reveal cycle.
	Tracing bool

	// TracerProvider overrides the global provider when Tracing is on.
	TracerProvider trace.TracerProvider

	// CheckOrigin validates the WebSocket Origin header.
	// Default: same-origin check from gorilla/websocket.
	CheckOrigin func(r *http.Request) bool

	// Logger is the base logger. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           "localhost:3000",
		Title:             "Tooltip",
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		MaxEventQueue:     256,
		Position:          tooltip.PositionTop,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.Title == "" {
		out.Title = d.Title
	}
	if out.ReadTimeout <= 0 {
		out.ReadTimeout = d.ReadTimeout
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.HeartbeatInterval <= 0 {
		out.HeartbeatInterval = d.HeartbeatInterval
	}
	if out.ShutdownTimeout <= 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.MaxEventQueue <= 0 {
		out.MaxEventQueue = d.MaxEventQueue
	}
	if !out.Position.Valid() {
		out.Position = d.Position
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}
