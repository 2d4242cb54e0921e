package dom

// ResizeObserverEntry describes one observed size change.
type ResizeObserverEntry struct {
	Target      Element
	ContentRect DOMRect
}

// ResizeObserverCallback receives batched size changes.
type ResizeObserverCallback func(entries []ResizeObserverEntry)

// ResizeObserver watches elements for size changes.
type ResizeObserver interface {
	Observe(target Element)
	Unobserve(target Element)
	Disconnect()
}

// ResizeObserverFactory constructs a ResizeObserver, standing in for the
// ResizeObserver constructor (native or polyfill).
type ResizeObserverFactory func(cb ResizeObserverCallback) ResizeObserver

// NopResizeObserver never fires. Used by non-interactive hosts.
type NopResizeObserver struct{}

func (NopResizeObserver) Observe(Element)   {}
func (NopResizeObserver) Unobserve(Element) {}
func (NopResizeObserver) Disconnect()       {}

// NewNopResizeObserver is a ResizeObserverFactory returning NopResizeObserver.
func NewNopResizeObserver(ResizeObserverCallback) ResizeObserver {
	return NopResizeObserver{}
}
