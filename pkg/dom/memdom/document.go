package memdom

import (
	"github.com/vango-dev/measure/pkg/dom"
)

// Document is an in-memory host document.
type Document struct {
	root   *Element
	body   *Element
	window *Window

	headless         bool
	noResizeObserver bool

	observers        []*resizeObserver
	observersCreated int
	pending          []*resizeObserver
}

// Option configures a Document.
type Option func(*Document)

// Headless makes the document non-interactive: Window returns nil, the
// way a server-rendering environment has no window object.
func Headless() Option {
	return func(d *Document) {
		d.headless = true
	}
}

// WithoutResizeObserver removes native ResizeObserver support.
func WithoutResizeObserver() Option {
	return func(d *Document) {
		d.noResizeObserver = true
	}
}

// WithViewport sets the initial window size.
func WithViewport(width, height float64) Option {
	return func(d *Document) {
		d.window.width = width
		d.window.height = height
	}
}

// NewDocument creates a document with <html> and <body> elements.
func NewDocument(opts ...Option) *Document {
	d := &Document{}
	d.window = &Window{doc: d, width: 1024, height: 768}
	for _, opt := range opts {
		opt(d)
	}

	d.root = d.CreateElement("html")
	d.root.connected = true
	d.body = d.CreateElement("body")
	d.root.AppendChild(d.body)
	d.body.SetRect(0, 0, d.window.width, d.window.height)
	return d
}

// Window implements dom.Host.
func (d *Document) Window() dom.Window {
	if d.headless {
		return nil
	}
	return d.window
}

// Win returns the concrete window, even for headless documents.
func (d *Document) Win() *Window {
	return d.window
}

// Body implements dom.Host.
func (d *Document) Body() dom.Element {
	return d.body
}

// BodyElement returns the concrete body element.
func (d *Document) BodyElement() *Element {
	return d.body
}

// ComputedStyle implements dom.Host.
func (d *Document) ComputedStyle(el dom.Element) dom.Style {
	if h, ok := el.(holder); ok {
		return h.base().style
	}
	return dom.Style{}
}

// ResizeObserver implements dom.Host.
func (d *Document) ResizeObserver() dom.ResizeObserverFactory {
	if d.noResizeObserver || d.headless {
		return nil
	}
	return d.NewResizeObserver
}

// CreateElement creates a detached HTML element.
func (d *Document) CreateElement(tag string) *Element {
	el := &Element{}
	el.node.init(d, tag, el)
	return el
}

// CreateSVGElement creates a detached SVG element. SVG elements have no
// offset size model.
func (d *Document) CreateSVGElement(tag string) *SVGElement {
	el := &SVGElement{}
	el.node.init(d, tag, el)
	return el
}

// ObserversCreated returns how many resize observers were ever created.
func (d *Document) ObserversCreated() int {
	return d.observersCreated
}

// ActiveObservers returns how many resize observers are still connected.
func (d *Document) ActiveObservers() int {
	return len(d.observers)
}

// Flush delivers queued resize observations and returns how many observer
// callbacks ran.
func (d *Document) Flush() int {
	queue := d.pending
	d.pending = nil

	delivered := 0
	for _, ro := range queue {
		entries := ro.takeEntries()
		if len(entries) == 0 || ro.disconnected {
			continue
		}
		ro.cb(entries)
		delivered++
	}
	return delivered
}

// dispatch runs an event along the capture path ending at target. A nil
// target dispatches at the window only.
func (d *Document) dispatch(target *node, eventType string) {
	ev := dom.Event{Type: eventType}
	if target != nil {
		ev.Target = target.self
	}

	var path []*node
	for n := target; n != nil; n = n.parent {
		path = append(path, n)
	}

	// Capture: window, then root down to the parent.
	d.window.listeners.fire(ev, phaseCapture)
	for i := len(path) - 1; i >= 1; i-- {
		path[i].listeners.fire(ev, phaseCapture)
	}
	if target != nil {
		target.listeners.fire(ev, phaseTarget)
	} else {
		d.window.listeners.fire(ev, phaseBubble)
	}
}

func (d *Document) queue(ro *resizeObserver) {
	for _, p := range d.pending {
		if p == ro {
			return
		}
	}
	d.pending = append(d.pending, ro)
}

func (d *Document) removeObserver(ro *resizeObserver) {
	for i, o := range d.observers {
		if o == ro {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			break
		}
	}
	for i, p := range d.pending {
		if p == ro {
			d.pending = append(d.pending[:i], d.pending[i+1:]...)
			break
		}
	}
}

// scrollOffset sums the scroll offsets of n's ancestors and the window.
func (d *Document) scrollOffset(n *node) (float64, float64) {
	dx, dy := d.window.scrollX, d.window.scrollY
	for p := n.parent; p != nil; p = p.parent {
		dx += p.scrollLeft
		dy += p.scrollTop
	}
	return dx, dy
}
