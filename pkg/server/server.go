package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/tooltip/pkg/observe"
	"github.com/vango-dev/tooltip/pkg/render"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

//go:embed client.js
var clientScript []byte

// Server serves the demo page and WebSocket sessions.
type Server struct {
	config   *Config
	router   chi.Router
	upgrader websocket.Upgrader
	logger   *slog.Logger

	metrics  *observe.Metrics
	observer tooltip.Observer

	mu       sync.Mutex
	sessions map[string]*Session
	nextID   atomic.Uint64

	httpServer *http.Server
}

// New creates a Server. A nil config uses DefaultConfig.
func New(config *Config) *Server {
	config = config.withDefaults()

	s := &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		logger:   config.Logger.With("component", "server"),
		sessions: make(map[string]*Session),
	}

	var observers []tooltip.Observer
	if config.Registry != nil {
		s.metrics = observe.NewMetrics(observe.WithRegistry(config.Registry))
		observers = append(observers, s.metrics)
	}
	if config.Tracing {
		var opts []observe.TracerOption
		if config.TracerProvider != nil {
			opts = append(opts, observe.WithTracerProvider(config.TracerProvider))
		}
		observers = append(observers, observe.NewTracer(opts...))
	}
	if len(observers) > 0 {
		s.observer = observe.Multi(observers...)
	}

	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.Get("/", s.handlePage)
	r.Get("/tooltip.css", handleStylesheet)
	r.Get("/client.js", handleClientScript)
	r.Get("/ws", s.HandleWebSocket)
	r.Get("/healthz", healthzHandler)
	if s.config.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handlePage renders the demo page. The page tooltips are throwaway: the
// WebSocket session mounts its own with the same IDs.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	demo := NewDemo(s.config.Title, s.config.Position, s.config.Tooltip...)
	defer demo.Unmount()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := render.NewRenderer(render.RendererConfig{}).RenderPage(w, render.PageData{
		Title:       s.config.Title,
		Stylesheets: []string{"/tooltip.css"},
		Scripts:     []string{"/client.js"},
		Body:        demo.Render(),
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

func handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(tooltip.Stylesheet()))
}

func handleClientScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Write(clientScript)
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode JSON response", "error", err)
	}
}

// HandleWebSocket upgrades the connection and starts a session.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	id := "s" + strconv.FormatUint(s.nextID.Add(1), 10)
	sess := newSession(id, conn, s.config, s.observer)
	sess.onClose = s.removeSession

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.Info("session started", "session_id", id, "remote", r.RemoteAddr)
	sess.Start()
}

func (s *Server) removeSession(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Config returns the effective configuration.
func (s *Server) Config() *Config {
	return s.config
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.config.Address,
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session, then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()
	for _, sess := range sessions {
		sess.Close()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}
