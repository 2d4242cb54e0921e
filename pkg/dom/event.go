package dom

// Event types the measuring engine listens for.
const (
	EventScroll = "scroll"
	EventResize = "resize"
)

// Event is a dispatched DOM event.
type Event struct {
	// Type is the event type, e.g. "scroll".
	Type string

	// Target is the element the event was dispatched at. Nil for events
	// dispatched at the window.
	Target Element
}

// Listener is a comparable handle around an event callback.
type Listener struct {
	fn func(Event)
}

// NewListener wraps fn in a listener handle.
func NewListener(fn func(Event)) *Listener {
	return &Listener{fn: fn}
}

// Handle invokes the callback. A nil listener is ignored.
func (l *Listener) Handle(e Event) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(e)
}

// ListenerOptions mirrors the AddEventListenerOptions dictionary.
type ListenerOptions struct {
	// Capture registers the listener for the capture phase.
	Capture bool

	// Passive promises the listener never cancels the event.
	Passive bool
}

// EventTarget is anything listeners can be attached to.
type EventTarget interface {
	AddEventListener(eventType string, l *Listener, opts ListenerOptions)
	RemoveEventListener(eventType string, l *Listener, capture bool)
}
