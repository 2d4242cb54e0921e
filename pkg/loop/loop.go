package loop

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// ErrClosed is returned by Run when the loop has already been stopped.
var ErrClosed = errors.New("loop: closed")

// DefaultQueueSize is the dispatch queue capacity when Config.QueueSize is 0.
const DefaultQueueSize = 256

// Config configures a Loop.
type Config struct {
	// QueueSize is the dispatch queue capacity.
	QueueSize int

	// Logger receives dropped-callback warnings and recovered panics.
	Logger *slog.Logger
}

// Loop runs dispatched callbacks one at a time on the goroutine that
// calls Run.
type Loop struct {
	queue  chan func()
	done   chan struct{}
	once   sync.Once
	closed atomic.Bool
	logger *slog.Logger
}

// New creates a loop. Call Run to start processing.
func New(cfg Config) *Loop {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Loop{
		queue:  make(chan func(), cfg.QueueSize),
		done:   make(chan struct{}),
		logger: cfg.Logger,
	}
}

// Dispatch queues fn to run on the loop. Callbacks queued after Close, or
// while the queue is full, are dropped.
func (l *Loop) Dispatch(fn func()) {
	if l.closed.Load() {
		return
	}
	select {
	case l.queue <- fn:
	case <-l.done:
	default:
		l.logger.Warn("dispatch queue full, discarding callback")
	}
}

// Call runs fn on the loop and waits for it to finish.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	l.Dispatch(func() {
		defer close(finished)
		fn()
	})
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes callbacks until ctx is done or Close is called.
func (l *Loop) Run(ctx context.Context) error {
	if l.closed.Load() {
		return ErrClosed
	}
	for {
		select {
		case fn := <-l.queue:
			l.execute(fn)
		case <-ctx.Done():
			l.Close()
			return ctx.Err()
		case <-l.done:
			return nil
		}
	}
}

// Close stops the loop. Pending callbacks are discarded.
func (l *Loop) Close() {
	l.once.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
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
}

// Now implements Scheduler.
func (l *Loop) Now() time.Time { return time.Now() }

// AfterFunc implements Scheduler. fn is dispatched onto the loop when the
// timer fires.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Dispatch(func() {
			if t.stopped.Load() {
				return
			}
			fn()
		})
	})
	return t
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	return t.timer.Stop()
}
