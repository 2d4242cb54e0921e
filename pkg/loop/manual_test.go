package loop

import (
	"testing"
	"time"
)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	clock := NewManual()
	var got []string

	clock.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	clock.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	clock.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })

	clock.Advance(20 * time.Millisecond)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("after 20ms expected [a b], got %v", got)
	}
	if clock.Pending() != 1 {
		t.Fatalf("expected 1 pending timer, got %d", clock.Pending())
	}

	clock.Advance(10 * time.Millisecond)
	if len(got) != 3 || got[2] != "c" {
		t.Fatalf("expected c to fire at 30ms, got %v", got)
	}
}

func TestManualNowTracksFiringTime(t *testing.T) {
	clock := NewManual()
	start := clock.Now()

	var at time.Duration
	clock.AfterFunc(15*time.Millisecond, func() { at = clock.Now().Sub(start) })
	clock.Advance(time.Second)

	if at != 15*time.Millisecond {
		t.Fatalf("callback saw now=%v, want 15ms", at)
	}
	if clock.Now().Sub(start) != time.Second {
		t.Fatalf("clock should end at 1s, got %v", clock.Now().Sub(start))
	}
}

func TestManualNestedTimers(t *testing.T) {
	clock := NewManual()
	count := 0

	var tick func()
	tick = func() {
		count++
		clock.AfterFunc(10*time.Millisecond, tick)
	}
	clock.AfterFunc(10*time.Millisecond, tick)

	clock.Advance(50 * time.Millisecond)
	if count != 5 {
		t.Fatalf("expected 5 ticks in 50ms, got %d", count)
	}
}

func TestManualStop(t *testing.T) {
	clock := NewManual()
	fired := false
	timer := clock.AfterFunc(time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("Stop on pending timer should return true")
	}
	if timer.Stop() {
		t.Fatal("second Stop should return false")
	}
	clock.Advance(time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}
}
