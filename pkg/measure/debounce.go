package measure

import (
	"time"

	"github.com/vango-dev/measure/pkg/loop"
)

// debouncer coalesces calls into one trailing invocation per quiet
// window. A window <= 0 calls through synchronously.
type debouncer struct {
	sched loop.Scheduler
	wait  time.Duration
	fn    func(Trigger)

	timer loop.Timer
	last  Trigger
}

func newDebouncer(sched loop.Scheduler, wait time.Duration, fn func(Trigger)) *debouncer {
	return &debouncer{sched: sched, wait: wait, fn: fn}
}

// call records t and (re)arms the window.
func (d *debouncer) call(t Trigger) {
	if d.wait <= 0 {
		d.fn(t)
		return
	}
	d.last = t
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.sched.AfterFunc(d.wait, d.fire)
}

func (d *debouncer) fire() {
	d.timer = nil
	d.fn(d.last)
}

// flush runs a pending invocation immediately.
func (d *debouncer) flush() {
	if d.timer == nil {
		return
	}
	d.timer.Stop()
	d.fire()
}

// clear drops a pending invocation.
func (d *debouncer) clear() {
	if d.timer == nil {
		return
	}
	d.timer.Stop()
	d.timer = nil
}

func (d *debouncer) pending() bool {
	return d.timer != nil
}
