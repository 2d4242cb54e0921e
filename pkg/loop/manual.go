package loop

import (
	"sort"
	"time"
)

// Manual is a virtual clock. Timers fire only from Advance, synchronously
// and in deadline order, on the caller's goroutine.
type Manual struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

// NewManual creates a virtual clock starting at the Unix epoch.
func NewManual() *Manual {
	return &Manual{now: time.Unix(0, 0)}
}

// Now implements Scheduler.
func (m *Manual) Now() time.Time { return m.now }

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{clock: m, at: m.now.Add(d), seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves time forward by d, firing every timer that comes due.
// Timers scheduled by fired callbacks also fire if they fall within d.
func (m *Manual) Advance(d time.Duration) {
	end := m.now.Add(d)
	for {
		t := m.next()
		if t == nil || t.at.After(end) {
			break
		}
		m.remove(t)
		m.now = t.at
		t.fn()
	}
	m.now = end
}

// Pending returns the number of timers that have not fired or stopped.
func (m *Manual) Pending() int { return len(m.timers) }

func (m *Manual) next() *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at.Equal(m.timers[j].at) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].at.Before(m.timers[j].at)
	})
	return m.timers[0]
}

func (m *Manual) remove(t *manualTimer) bool {
	for i, x := range m.timers {
		if x == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return true
		}
	}
	return false
}

type manualTimer struct {
	clock *Manual
	at    time.Time
	seq   uint64
	fn    func()
}

func (t *manualTimer) Stop() bool {
	return t.clock.remove(t)
}
