package dom

// Window is the viewport-level event target.
type Window interface {
	EventTarget
}

// Host is the document environment an element lives in.
type Host interface {
	// Window returns the host window. Nil means the host is not
	// interactive (server rendering); no events will ever fire.
	Window() Window

	// Body returns the document body, where scroll-ancestor walks stop.
	Body() Element

	// ComputedStyle returns the computed overflow style of el.
	ComputedStyle(el Element) Style

	// ResizeObserver returns the native ResizeObserver constructor, or
	// nil when the host has none.
	ResizeObserver() ResizeObserverFactory
}

// Interactive reports whether h is a live, event-dispatching host.
func Interactive(h Host) bool {
	return h != nil && h.Window() != nil
}
