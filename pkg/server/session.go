package server

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/loop"
	"github.com/vango-dev/tooltip/pkg/render"
	"github.com/vango-dev/tooltip/pkg/tooltip"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

// Session is one connected browser tab. Handlers, timer callbacks and
// renders all run on the session loop.
type Session struct {
	ID string

	conn   *websocket.Conn
	config *Config
	logger *slog.Logger

	loop     *loop.Loop
	demo     *Demo
	renderer *render.Renderer
	lastHTML string

	// writeMu serializes data frames; pings use WriteControl.
	writeMu sync.Mutex

	done      chan struct{}
	closeOnce sync.Once
	onClose   func(*Session)
}

func newSession(id string, conn *websocket.Conn, config *Config, observer tooltip.Observer) *Session {
	s := &Session{
		ID:       id,
		conn:     conn,
		config:   config,
		logger:   config.Logger.With("component", "session", "session_id", id),
		renderer: render.NewRenderer(render.RendererConfig{}),
		done:     make(chan struct{}),
	}

	s.loop = loop.New(loop.Options{
		QueueSize: config.MaxEventQueue,
		AfterTurn: s.flush,
		Logger:    s.logger,
	})

	opts := append([]tooltip.Option{}, config.Tooltip...)
	opts = append(opts,
		tooltip.WithDispatcher(s.loop),
		tooltip.WithLogger(s.logger),
	)
	if observer != nil {
		opts = append(opts, tooltip.WithObserver(observer))
	}
	s.demo = NewDemo(config.Title, config.Position, opts...)
	return s
}

// Start sends the initial markup and runs the read and heartbeat loops.
func (s *Session) Start() {
	// An empty turn triggers the first flush.
	if err := s.loop.Dispatch(func() {}); err != nil {
		s.logger.Error("initial render", "error", err)
	}
	go s.ReadLoop()
	go s.WriteLoop()
}

// ReadLoop reads client frames until the connection fails.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		msg, err := DecodeClientMessage(data)
		if err != nil {
			s.logger.Warn("bad client message", "error", err)
			s.sendError(err)
			continue
		}
		s.handleEvent(msg)
	}
}

// handleEvent queues the handler for msg on the session loop.
func (s *Session) handleEvent(msg ClientMessage) {
	err := s.loop.Dispatch(func() {
		h, ok := s.renderer.Handler(msg.HID, msg.Event)
		if !ok {
			s.sendError(errors.New("E201").WithDetailf("%s on %s", msg.Event, msg.HID))
			return
		}
		vdom.Invoke(h, vdom.Event{Type: msg.Event, HID: msg.HID})
	})
	switch {
	case err == nil:
	case stderrors.Is(err, loop.ErrQueueFull):
		s.sendError(errors.New("E203").Wrap(err))
	default:
		s.logger.Debug("event dropped", "error", err)
	}
}

// WriteLoop sends heartbeat pings until the session closes.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.logger.Debug("ping failed", "error", err)
				return
			}
		case <-s.done:
			return
		}
	}
}

// flush runs after every loop turn and pushes the markup if it changed.
func (s *Session) flush() {
	html, err := s.renderer.RenderToString(s.demo.Render())
	if err != nil {
		s.logger.Error("render failed", "error", err)
		return
	}
	if html == s.lastHTML {
		return
	}
	s.lastHTML = html
	if err := s.send(ServerMessage{Type: MsgHTML, HTML: html}); err != nil {
		s.logger.Debug("write failed", "error", err)
		// Closing the connection ends ReadLoop, which closes the session.
		s.conn.Close()
	}
}

func (s *Session) sendError(err error) {
	if werr := s.send(errorMessage(err)); werr != nil {
		s.logger.Debug("error frame not sent", "error", werr)
	}
}

func (s *Session) send(msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Demo returns the session's tooltips.
func (s *Session) Demo() *Demo {
	return s.demo
}

// Loop returns the session loop.
func (s *Session) Loop() *loop.Loop {
	return s.loop
}

// Done is closed when the session has shut down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close unmounts every tooltip, stops the loop and closes the connection.
// It must not be called from the session loop.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if err := s.loop.Call(s.demo.Unmount); err != nil {
			s.demo.Unmount()
		}
		s.loop.Close()

		s.writeMu.Lock()
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		s.writeMu.Unlock()
		s.conn.Close()

		if s.onClose != nil {
			s.onClose(s)
		}
		close(s.done)
		s.logger.Info("session closed")
	})
}
