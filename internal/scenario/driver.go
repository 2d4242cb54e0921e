package scenario

import (
	"context"
	"time"

	"github.com/vango-dev/measure/pkg/loop"
)

// Driver runs scenario work on an event loop and lets time pass.
type Driver interface {
	loop.Scheduler

	// Do runs fn on the event loop and waits for it.
	Do(ctx context.Context, fn func()) error

	// Wait lets d pass. Timers due in that time fire on the event loop.
	Wait(ctx context.Context, d time.Duration) error
}

// ManualDriver replays on a virtual clock. Wait returns as soon as every
// timer due within d has fired.
type ManualDriver struct {
	*loop.Manual
}

// NewManualDriver creates a driver over a fresh virtual clock.
func NewManualDriver() ManualDriver {
	return ManualDriver{Manual: loop.NewManual()}
}

// Do implements Driver.
func (d ManualDriver) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}

// Wait implements Driver.
func (d ManualDriver) Wait(ctx context.Context, dur time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.Advance(dur)
	return nil
}

// LoopDriver replays in real time on a running loop.Loop.
type LoopDriver struct {
	*loop.Loop
}

// Do implements Driver.
func (d LoopDriver) Do(ctx context.Context, fn func()) error {
	return d.Call(ctx, fn)
}

// Wait implements Driver.
func (d LoopDriver) Wait(ctx context.Context, dur time.Duration) error {
	if dur <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(dur)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
