// Package dom defines the host DOM surface the measuring engine talks to.
//
// The engine never reaches for a concrete browser binding. Instead a host
// (a WASM bridge, a server-side layout engine, or the in-memory memdom
// package used by tests and the CLI) implements a handful of interfaces:
//
//   - Element: a node that can be measured and has a parent chain.
//   - EventTarget: add and remove event listeners with capture/passive flags.
//   - Window: the viewport-level event target.
//   - ResizeObserver: size-change notifications for observed elements.
//   - Host: ties the above together and answers computed-style queries.
//
// # Listener Identity
//
// Go funcs are not comparable, so listeners are registered through a
// *Listener handle. Removing a listener requires the same handle and the
// same capture flag that were used to add it, mirroring the DOM rule.
//
//	l := dom.NewListener(func(e dom.Event) { ... })
//	el.AddEventListener("scroll", l, dom.ListenerOptions{Capture: true, Passive: true})
//	el.RemoveEventListener("scroll", l, true)
package dom
