// Package loop provides the single-threaded event loop and timer
// scheduling used by the measuring engine and motion values.
//
// Hosts deliver DOM events on one goroutine. Deferred work (debounce
// windows, animation frames) must come back onto that same goroutine, so
// timers are created through a Scheduler rather than time.AfterFunc:
//
//	l := loop.New(loop.Config{})
//	go l.Run(ctx)
//	l.Dispatch(func() { m.Ref(el) })           // runs on the loop
//	l.AfterFunc(16*time.Millisecond, refresh)   // fires on the loop
//
// Manual is a virtual-time Scheduler for tests:
//
//	clock := loop.NewManual()
//	clock.AfterFunc(50*time.Millisecond, fn)
//	clock.Advance(50 * time.Millisecond) // fn runs here, synchronously
package loop
