// Package loop provides the single-threaded event loop that serializes all
// component work: client events, timer callbacks and re-renders run one at
// a time, in the order they were dispatched.
package loop

import (
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
)

var (
	// ErrClosed is returned by Dispatch after Close.
	ErrClosed = errors.New("loop: closed")

	// ErrQueueFull is returned when the dispatch queue is at capacity.
	ErrQueueFull = errors.New("loop: dispatch queue full")
)

// Dispatcher runs functions on an event loop.
type Dispatcher interface {
	Dispatch(fn func()) error
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(fn func()) error

// Dispatch implements Dispatcher.
func (f DispatchFunc) Dispatch(fn func()) error { return f(fn) }

// Inline is a Dispatcher that runs fn immediately on the caller's goroutine.
// Useful with a fake clock, where timer callbacks already run on the test
// goroutine.
var Inline Dispatcher = DispatchFunc(func(fn func()) error {
	fn()
	return nil
})

// Options configures a Loop.
type Options struct {
	// QueueSize is the dispatch channel buffer. Default: 256.
	QueueSize int

	// AfterTurn runs on the loop after every dispatched function,
	// e.g. to re-render dirty components.
	AfterTurn func()

	// Logger receives panic reports. Default: slog.Default().
	Logger *slog.Logger
}

// Loop executes dispatched functions on a single goroutine.
type Loop struct {
	queue     chan func()
	done      chan struct{}
	stopped   chan struct{}
	afterTurn func()
	logger    *slog.Logger

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// New creates a loop and starts its goroutine.
func New(opts Options) *Loop {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	l := &Loop{
		queue:     make(chan func(), opts.QueueSize),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
		afterTurn: opts.AfterTurn,
		logger:    opts.Logger.With("component", "loop"),
	}
	go l.run()
	return l
}

// Dispatch queues fn. It never blocks.
func (l *Loop) Dispatch(fn func()) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrClosed
	}
	select {
	case l.queue <- fn:
		return nil
	default:
		l.logger.Warn("dispatch queue full, discarding callback")
		return ErrQueueFull
	}
}

// Call dispatches fn and waits for it to finish.
func (l *Loop) Call(fn func()) error {
	done := make(chan struct{})
	if err := l.Dispatch(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-l.stopped:
		// The loop may have drained fn before stopping.
		select {
		case <-done:
			return nil
		default:
			return ErrClosed
		}
	}
}

// Close stops accepting work, runs what is already queued, and waits for
// the loop goroutine to exit. Close is idempotent.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		l.mu.Unlock()
		close(l.done)
	})
	<-l.stopped
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.stopped
}

func (l *Loop) run() {
	defer close(l.stopped)
	for {
		select {
		case fn := <-l.queue:
			l.execute(fn)
		case <-l.done:
			// Drain work queued before Close.
			for {
				select {
				case fn := <-l.queue:
					l.execute(fn)
				default:
					return
				}
			}
		}
	}
}

func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("dispatch panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
	if l.afterTurn != nil {
		l.afterTurn()
	}
}
