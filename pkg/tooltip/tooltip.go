package tooltip

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/tooltip/pkg/clock"
	"github.com/vango-dev/tooltip/pkg/loop"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

var instances atomic.Uint64

// Tooltip is a mounted tooltip instance. It implements vdom.Component.
//
// All methods are safe for concurrent use, but callers that need the
// documented ordering (hide wins over a pending show) should invoke them
// from the same loop the tooltip dispatches its timer callbacks to.
type Tooltip struct {
	cfg        Config
	instance   uint64
	clock      clock.Clock
	dispatcher loop.Dispatcher
	observers  []Observer
	logger     *slog.Logger

	mu      sync.Mutex
	state   State
	pending clock.Timer

	// gen is bumped by every trigger and by Unmount. A timer callback only
	// applies if the generation it captured is still current.
	gen     uint64
	mounted bool
}

// New mounts a tooltip showing content. The initial state is StateHidden.
func New(content string, opts ...Option) *Tooltip {
	o := buildOptions(content, opts)
	return &Tooltip{
		cfg:        o.cfg,
		instance:   instances.Add(1),
		clock:      o.clock,
		dispatcher: o.dispatcher,
		observers:  o.observers,
		logger:     o.logger,
		state:      StateHidden,
		mounted:    true,
	}
}

// Config returns the tooltip's configuration.
func (t *Tooltip) Config() Config {
	return t.cfg
}

// ID returns the tooltip id.
func (t *Tooltip) ID() string {
	return t.cfg.ID
}

// State returns the current state.
func (t *Tooltip) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Visible reports whether the label is rendered.
func (t *Tooltip) Visible() bool {
	return t.State() == StateVisible
}

// Mounted reports whether Unmount has not been called yet.
func (t *Tooltip) Mounted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mounted
}

// OnPointerEnter is the pointerenter handler.
func (t *Tooltip) OnPointerEnter() { t.Show() }

// OnPointerLeave is the pointerleave handler.
func (t *Tooltip) OnPointerLeave() { t.Hide() }

// OnFocus is the focus handler.
func (t *Tooltip) OnFocus() { t.Show() }

// OnBlur is the blur handler.
func (t *Tooltip) OnBlur() { t.Hide() }

// Show starts the delayed reveal. A reveal already pending is replaced by
// a fresh one, so at most one timer exists. Showing a visible tooltip is a
// no-op.
func (t *Tooltip) Show() {
	t.mu.Lock()
	if !t.mounted || t.state == StateVisible {
		t.mu.Unlock()
		return
	}

	replaced := t.stopPendingLocked()
	t.gen++
	gen := t.gen
	from := t.state
	t.state = StatePendingShow
	t.pending = t.clock.AfterFunc(t.cfg.Delay, func() {
		if err := t.dispatcher.Dispatch(func() { t.reveal(gen) }); err != nil {
			t.logger.Debug("reveal dropped", "error", err)
		}
	})
	t.mu.Unlock()

	if replaced {
		t.logger.Debug("pending reveal replaced")
	}
	if from != StatePendingShow {
		t.notify(from, StatePendingShow, CauseShow, false)
	}
}

// Hide hides the label immediately and cancels any pending reveal.
func (t *Tooltip) Hide() {
	t.mu.Lock()
	if !t.mounted {
		t.mu.Unlock()
		return
	}
	cancelled := t.stopPendingLocked()
	t.gen++
	from := t.state
	t.state = StateHidden
	t.mu.Unlock()

	if from != StateHidden {
		t.notify(from, StateHidden, CauseHide, cancelled)
	}
}

// Unmount tears the tooltip down. The pending timer is cancelled and
// every later call or timer callback becomes a no-op. Unmount is idempotent.
func (t *Tooltip) Unmount() {
	t.mu.Lock()
	if !t.mounted {
		t.mu.Unlock()
		return
	}
	t.mounted = false
	cancelled := t.stopPendingLocked()
	t.gen++
	from := t.state
	t.state = StateHidden
	t.mu.Unlock()

	if from != StateHidden {
		t.notify(from, StateHidden, CauseUnmount, cancelled)
	}
}

// reveal runs on the dispatcher when the delay has elapsed.
func (t *Tooltip) reveal(gen uint64) {
	t.mu.Lock()
	if !t.mounted || gen != t.gen || t.state != StatePendingShow {
		t.mu.Unlock()
		t.logger.Debug("stale reveal ignored")
		return
	}
	t.pending = nil
	t.state = StateVisible
	t.mu.Unlock()

	t.notify(StatePendingShow, StateVisible, CauseTimer, false)
}

// stopPendingLocked cancels the pending timer, reporting whether one existed.
func (t *Tooltip) stopPendingLocked() bool {
	if t.pending == nil {
		return false
	}
	t.pending.Stop()
	t.pending = nil
	return true
}

func (t *Tooltip) notify(from, to State, cause Cause, cancelled bool) {
	t.logger.Debug("tooltip transition",
		"from", from.String(),
		"to", to.String(),
		"cause", cause.String())

	if len(t.observers) == 0 {
		return
	}
	tr := Transition{
		ID:        t.cfg.ID,
		Instance:  t.instance,
		Position:  t.cfg.Position,
		From:      from,
		To:        to,
		Cause:     cause,
		At:        t.clock.Now(),
		Cancelled: cancelled,
	}
	for _, o := range t.observers {
		o.ObserveTransition(tr)
	}
}

// Render returns the wrapper with its children, plus the label when visible.
func (t *Tooltip) Render() *vdom.VNode {
	state := t.State()
	visible := state == StateVisible

	var label *vdom.VNode
	var describedBy vdom.Attr
	if visible {
		label = t.renderLabel()
		describedBy = vdom.AriaDescribedBy(t.cfg.LabelID())
	}

	// focusin/focusout bubble from focusable children; focus/blur do not.
	return vdom.Span(
		vdom.Key(t.cfg.ID),
		vdom.Class("tooltip-wrapper"),
		vdom.Data("tooltip", t.cfg.ID),
		vdom.Data("state", state.String()),
		describedBy,
		vdom.OnPointerEnter(t.OnPointerEnter),
		vdom.OnPointerLeave(t.OnPointerLeave),
		vdom.OnFocusIn(t.OnFocus),
		vdom.OnFocusOut(t.OnBlur),
		t.cfg.Children,
		label,
	)
}

func (t *Tooltip) renderLabel() *vdom.VNode {
	return vdom.Div(
		vdom.ID(t.cfg.LabelID()),
		vdom.Class("tooltip", t.cfg.Position.ClassName()),
		vdom.Role("tooltip"),
		vdom.Data("position", t.cfg.Position.String()),
		vdom.Text(t.cfg.Content),
	)
}
