// Package measure tracks the geometry of one element and publishes it into
// eight animatable reactive values.
//
// # Quick Start
//
//	m, err := measure.Use(host,
//	    measure.WithScroll(true),
//	    measure.WithDebounce(50*time.Millisecond),
//	    measure.WithScheduler(eventLoop),
//	)
//	if err != nil {
//	    return err // measure.ErrNoResizeObserver, measure.ErrNoScheduler
//	}
//	ref, bounds, forceRefresh := m.Result()
//
//	ref(element)  // start tracking
//	m.Mount()     // component is live: publishing enabled
//
//	bounds.Width.OnChange(func(w float64) { ... })
//
// # Change Detection
//
// A resize observer on the element, capturing scroll listeners on its
// scrollable ancestors, and window resize/scroll listeners all feed one
// dispatcher. Every trigger runs the change detector, optionally through a
// trailing-edge debounce window (resize and scroll windows are separate).
// The detector measures the element and publishes only when one of the
// eight fields differs from the last published snapshot.
//
// The first publish after an element is attached uses Jump, so consumers
// never see an animation from the zero state. Later publishes use Set and
// go through the values' transition.
//
// # Threading
//
// A Measure is not safe for concurrent use. All methods, host event
// callbacks and scheduler callbacks must run on the host's event loop
// (see package loop). Debounce windows therefore need WithScheduler; Use
// rejects them otherwise.
package measure
