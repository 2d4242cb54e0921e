package loop

import "time"

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// ran or was already stopped.
	Stop() bool
}

// Scheduler creates timers whose callbacks run on the caller's event loop.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time

	// AfterFunc schedules fn to run once after d.
	AfterFunc(d time.Duration, fn func()) Timer
}

// realtime schedules directly on runtime timers. Callbacks run on the
// timer goroutine, so it only suits hosts that tolerate that.
type realtime struct{}

// Realtime returns a Scheduler backed by time.AfterFunc.
func Realtime() Scheduler { return realtime{} }

func (realtime) Now() time.Time { return time.Now() }

func (realtime) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
