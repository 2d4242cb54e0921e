package measure

import (
	"testing"
	"time"

	"github.com/vango-dev/measure/pkg/loop"
)

func TestDebouncerZeroWindowIsSynchronous(t *testing.T) {
	var calls []Trigger
	d := newDebouncer(loop.NewManual(), 0, func(t Trigger) { calls = append(calls, t) })

	d.call(TriggerWindowResized)
	d.call(TriggerForced)

	if len(calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(calls))
	}
	if d.pending() {
		t.Error("zero window should never be pending")
	}
}

func TestDebouncerTrailingEdge(t *testing.T) {
	clock := loop.NewManual()
	var calls []Trigger
	d := newDebouncer(clock, 10*time.Millisecond, func(t Trigger) { calls = append(calls, t) })

	d.call(TriggerAncestorScrolled)
	clock.Advance(8 * time.Millisecond)
	d.call(TriggerWindowScrolled)
	clock.Advance(8 * time.Millisecond)
	if len(calls) != 0 {
		t.Fatalf("calls = %d, want 0 while calls keep re-arming the window", len(calls))
	}

	clock.Advance(2 * time.Millisecond)
	if len(calls) != 1 || calls[0] != TriggerWindowScrolled {
		t.Fatalf("calls = %v, want [window_scrolled]", calls)
	}
	if clock.Pending() != 0 {
		t.Errorf("clock has %d timers, want 0", clock.Pending())
	}
}

func TestDebouncerFlushAndClear(t *testing.T) {
	clock := loop.NewManual()
	n := 0
	d := newDebouncer(clock, time.Second, func(Trigger) { n++ })

	d.flush()
	if n != 0 {
		t.Fatal("flush with nothing pending should not call")
	}

	d.call(TriggerResizeObserved)
	d.flush()
	if n != 1 || d.pending() {
		t.Fatalf("after flush: calls = %d, pending = %v", n, d.pending())
	}

	d.call(TriggerResizeObserved)
	d.clear()
	clock.Advance(time.Second)
	if n != 1 {
		t.Errorf("calls = %d after clear, want 1", n)
	}
}

func TestTriggerRoutes(t *testing.T) {
	tests := []struct {
		trigger Trigger
		route   route
	}{
		{TriggerResizeObserved, routeScroll},
		{TriggerAncestorScrolled, routeScroll},
		{TriggerWindowResized, routeResize},
		{TriggerWindowScrolled, routeScroll},
		{TriggerForced, routeDirect},
	}
	for _, tt := range tests {
		t.Run(tt.trigger.String(), func(t *testing.T) {
			if got := routes[tt.trigger]; got != tt.route {
				t.Errorf("route = %d, want %d", got, tt.route)
			}
		})
	}
}
