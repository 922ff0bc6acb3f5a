package tooltip

import (
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/vango-dev/tooltip/pkg/clock"
	"github.com/vango-dev/tooltip/pkg/loop"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

// DefaultDelay is the dwell time before the label appears.
const DefaultDelay = 300 * time.Millisecond

// Config is the immutable per-instance configuration.
type Config struct {
	// ID prefixes the label element id. Generated when empty.
	ID string

	// Content is the label text.
	Content string

	// Position is the anchor side. Default: PositionTop.
	Position Position

	// Delay is the hover/focus dwell time. Default: DefaultDelay.
	// Negative values are treated as zero.
	Delay time.Duration

	// Children are the trigger elements the tooltip wraps.
	Children []*vdom.VNode
}

// LabelID is the id of the rendered label element.
func (c Config) LabelID() string {
	return c.ID + "-label"
}

// Option configures a Tooltip.
type Option func(*options)

type options struct {
	cfg        Config
	clock      clock.Clock
	dispatcher loop.Dispatcher
	observers  []Observer
	logger     *slog.Logger
}

// WithPosition sets the anchor side.
func WithPosition(p Position) Option {
	return func(o *options) {
		o.cfg.Position = p
	}
}

// WithDelay sets the reveal delay. Negative values become zero.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d < 0 {
			d = 0
		}
		o.cfg.Delay = d
	}
}

// WithChildren sets the wrapped trigger content.
func WithChildren(children ...*vdom.VNode) Option {
	return func(o *options) {
		o.cfg.Children = append(o.cfg.Children, children...)
	}
}

// WithID sets the element id prefix.
func WithID(id string) Option {
	return func(o *options) {
		o.cfg.ID = id
	}
}

// WithClock sets the clock used for the reveal timer. Default: clock.Real().
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithDispatcher sets where timer callbacks run. Default: loop.Inline.
func WithDispatcher(d loop.Dispatcher) Option {
	return func(o *options) {
		o.dispatcher = d
	}
}

// WithObserver adds an observer. May be given more than once.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

var idCounter atomic.Uint64

func nextID() string {
	return "tooltip-" + strconv.FormatUint(idCounter.Add(1), 10)
}

func buildOptions(content string, opts []Option) options {
	o := options{
		cfg: Config{
			Content:  content,
			Position: PositionTop,
			Delay:    DefaultDelay,
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg.ID == "" {
		o.cfg.ID = nextID()
	}
	if o.clock == nil {
		o.clock = clock.Real()
	}
	if o.dispatcher == nil {
		o.dispatcher = loop.Inline
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	o.logger = o.logger.With("component", "tooltip", "tooltip_id", o.cfg.ID)
	return o
}
