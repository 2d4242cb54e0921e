// Package motion provides animatable reactive scalar values.
//
// A Value is a float64 cell with two write paths:
//
//	x := motion.New(0, motion.WithTransition(motion.Tween(200*time.Millisecond)),
//	    motion.WithScheduler(clock))
//	x.Jump(10) // immediate: subscribers see 10, no frames
//	x.Set(50)  // animated: subscribers see eased frames until 50
//
// Subscribers register with OnChange and are called after every visible
// change, outside any lock. Writes with no visible change do not notify.
//
// # Batching
//
// Batch defers change callbacks until the outermost batch returns. A
// subscriber notified several times inside a batch runs once, with the
// final value:
//
//	motion.Batch(func() {
//	    left.Jump(10)
//	    top.Jump(20)
//	})
//
// # Thread Safety
//
// Get is safe from any goroutine. Jump, Set and Stop must be called from
// the event loop that owns the value's Scheduler.
package motion
