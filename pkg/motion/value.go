package motion

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/measure/pkg/loop"
)

var idCounter atomic.Uint64

func nextID() uint64 { return idCounter.Add(1) }

// Unsubscribe removes a change callback.
type Unsubscribe func()

type subscription struct {
	id     uint64
	fn     func(float64)
	active bool
}

// Stats counts writes to a Value.
type Stats struct {
	// Jumps is the number of Jump calls.
	Jumps int

	// Sets is the number of Set calls.
	Sets int

	// Changes is the number of visible changes, including animation frames.
	Changes int
}

// Value is an animatable reactive float64.
type Value struct {
	id uint64

	mu      sync.RWMutex
	current float64
	target  float64
	stats   Stats
	subs    []*subscription

	transition Transition
	sched      loop.Scheduler
	anim       *animation
}

// Option configures a Value.
type Option func(*Value)

// WithTransition sets the transition used by Set.
func WithTransition(t Transition) Option {
	return func(v *Value) {
		v.transition = t
	}
}

// WithScheduler sets the scheduler that drives animation frames. Without
// one, Set is instant regardless of the transition.
func WithScheduler(s loop.Scheduler) Option {
	return func(v *Value) {
		v.sched = s
	}
}

// New creates a value with the given initial value.
func New(initial float64, opts ...Option) *Value {
	v := &Value{
		id:      nextID(),
		current: initial,
		target:  initial,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ID returns the value's unique identifier.
func (v *Value) ID() uint64 { return v.id }

// Get returns the current (possibly mid-animation) value.
func (v *Value) Get() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Target returns the value an in-flight animation is heading to, or the
// current value when idle.
func (v *Value) Target() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.target
}

// IsAnimating reports whether an animation is in flight.
func (v *Value) IsAnimating() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.anim != nil
}

// Stats returns write counters.
func (v *Value) Stats() Stats {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.stats
}

// Jump stops any animation and writes x immediately.
func (v *Value) Jump(x float64) {
	v.mu.Lock()
	v.stopLocked()
	v.stats.Jumps++
	v.target = x
	v.mu.Unlock()

	v.write(x)
}

// Set moves the value to x through its transition. An instant transition,
// or a value with no scheduler, writes x immediately.
func (v *Value) Set(x float64) {
	v.mu.Lock()
	v.stats.Sets++
	v.stopLocked()
	v.target = x
	if v.transition.Instant() || v.sched == nil || v.current == x {
		v.mu.Unlock()
		v.write(x)
		return
	}

	a := &animation{
		from:  v.current,
		to:    x,
		start: v.sched.Now(),
	}
	v.anim = a
	v.scheduleFrameLocked(a)
	v.mu.Unlock()
}

// Stop halts an in-flight animation at its current value.
func (v *Value) Stop() {
	v.mu.Lock()
	v.stopLocked()
	v.target = v.current
	v.mu.Unlock()
}

// OnChange registers fn to run after every visible change.
func (v *Value) OnChange(fn func(float64)) Unsubscribe {
	sub := &subscription{id: nextID(), fn: fn, active: true}

	v.mu.Lock()
	v.subs = append(v.subs, sub)
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		sub.active = false
		v.mu.Unlock()
	}
}

// write stores x and notifies subscribers if it changed.
func (v *Value) write(x float64) {
	v.mu.Lock()
	if v.current == x {
		v.mu.Unlock()
		return
	}
	v.current = x
	v.stats.Changes++

	active := make([]*subscription, 0, len(v.subs))
	for _, s := range v.subs {
		if s.active {
			active = append(active, s)
		}
	}
	v.subs = active
	v.mu.Unlock()

	for _, s := range active {
		fn := s.fn
		if batch.enqueue(s.id, func() { fn(x) }) {
			continue
		}
		fn(x)
	}
}

func (v *Value) stopLocked() {
	if v.anim == nil {
		return
	}
	if v.anim.timer != nil {
		v.anim.timer.Stop()
	}
	v.anim = nil
}

type animation struct {
	from, to float64
	start    time.Time
	timer    loop.Timer
}

func (v *Value) scheduleFrameLocked(a *animation) {
	a.timer = v.sched.AfterFunc(v.transition.frameInterval(), func() {
		v.frame(a)
	})
}

func (v *Value) frame(a *animation) {
	v.mu.Lock()
	if v.anim != a {
		v.mu.Unlock()
		return
	}
	progress := float64(v.sched.Now().Sub(a.start)) / float64(v.transition.Duration)
	var x float64
	if progress >= 1 {
		x = a.to
		v.anim = nil
	} else {
		x = a.from + (a.to-a.from)*v.transition.ease(progress)
		v.scheduleFrameLocked(a)
	}
	v.mu.Unlock()

	v.write(x)
}
