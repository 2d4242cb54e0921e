package memdom

import "github.com/vango-dev/measure/pkg/dom"

// Window is the document's viewport.
type Window struct {
	doc *Document

	width, height    float64
	scrollX, scrollY float64

	listeners listenerSet
}

// AddEventListener implements dom.EventTarget.
func (w *Window) AddEventListener(eventType string, l *dom.Listener, opts dom.ListenerOptions) {
	w.listeners.add(eventType, l, opts)
}

// RemoveEventListener implements dom.EventTarget.
func (w *Window) RemoveEventListener(eventType string, l *dom.Listener, capture bool) {
	w.listeners.remove(eventType, l, capture)
}

// ListenerCount returns how many listeners of eventType are registered.
func (w *Window) ListenerCount(eventType string) int {
	return w.listeners.count(eventType)
}

// Listeners describes the registered listeners of eventType.
func (w *Window) Listeners(eventType string) []Registration {
	return w.listeners.describe(eventType)
}

// Size returns the viewport size.
func (w *Window) Size() (float64, float64) {
	return w.width, w.height
}

// Resize changes the viewport size and dispatches a resize event.
func (w *Window) Resize(width, height float64) {
	w.width = width
	w.height = height
	w.doc.dispatch(nil, dom.EventResize)
}

// ScrollTo scrolls the document and dispatches a scroll event.
func (w *Window) ScrollTo(x, y float64) {
	w.scrollX = x
	w.scrollY = y
	w.doc.dispatch(nil, dom.EventScroll)
}

var _ dom.Window = (*Window)(nil)
