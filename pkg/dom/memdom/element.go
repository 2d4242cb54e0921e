package memdom

import "github.com/vango-dev/measure/pkg/dom"

// Node is the mutation surface shared by Element and SVGElement.
type Node interface {
	dom.Element
	Tag() string
	AppendChild(child dom.Element)
	Remove()
	Connected() bool
	SetRect(x, y, width, height float64)
	Layout() dom.DOMRect
	SetStyle(s dom.Style)
	ScrollTo(left, top float64)
	DispatchEvent(eventType string)
	ListenerCount(eventType string) int
}

// holder is implemented by every memdom element type.
type holder interface {
	base() *node
}

// node holds the state shared by HTML and SVG elements.
type node struct {
	doc  *Document
	tag  string
	self dom.Element

	parent   *node
	children []*node

	// connected is true while the node is reachable from the root.
	connected bool

	layout     dom.DOMRect
	style      dom.Style
	scrollLeft float64
	scrollTop  float64

	listeners listenerSet
}

func (n *node) init(d *Document, tag string, self dom.Element) {
	n.doc = d
	n.tag = tag
	n.self = self
}

func (n *node) base() *node { return n }

// Tag returns the element's tag name.
func (n *node) Tag() string { return n.tag }

// AddEventListener implements dom.EventTarget.
func (n *node) AddEventListener(eventType string, l *dom.Listener, opts dom.ListenerOptions) {
	n.listeners.add(eventType, l, opts)
}

// RemoveEventListener implements dom.EventTarget.
func (n *node) RemoveEventListener(eventType string, l *dom.Listener, capture bool) {
	n.listeners.remove(eventType, l, capture)
}

// ListenerCount returns how many listeners of eventType are registered.
func (n *node) ListenerCount(eventType string) int {
	return n.listeners.count(eventType)
}

// Listeners describes the registered listeners of eventType.
func (n *node) Listeners(eventType string) []Registration {
	return n.listeners.describe(eventType)
}

// ParentElement implements dom.Element.
func (n *node) ParentElement() dom.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent.self
}

// GetBoundingClientRect implements dom.Element.
func (n *node) GetBoundingClientRect() (dom.DOMRect, error) {
	if !n.connected {
		return dom.DOMRect{}, dom.ErrDetached
	}
	dx, dy := n.doc.scrollOffset(n)
	return n.layout.Translate(-dx, -dy), nil
}

// Connected reports whether the element is attached to the document.
func (n *node) Connected() bool { return n.connected }

// AppendChild moves child under n. Elements from other implementations
// are ignored.
func (n *node) AppendChild(child dom.Element) {
	h, ok := child.(holder)
	if !ok {
		return
	}
	c := h.base()
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
	c.setConnected(n.connected)
}

// Remove detaches the element from its parent.
func (n *node) Remove() {
	if n.parent == nil {
		return
	}
	n.parent.removeChild(n)
	n.parent = nil
	n.setConnected(false)
}

func (n *node) removeChild(c *node) {
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *node) setConnected(v bool) {
	n.connected = v
	for _, c := range n.children {
		c.setConnected(v)
	}
}

// SetRect sets the element's layout box in document coordinates. Resize
// observers watching the element are notified on the next Flush when the
// size changed.
func (n *node) SetRect(x, y, width, height float64) {
	sizeChanged := n.layout.Width != width || n.layout.Height != height
	n.layout = dom.NewDOMRect(x, y, width, height)
	if sizeChanged {
		n.notifyResize()
	}
}

// Layout returns the element's layout box in document coordinates.
func (n *node) Layout() dom.DOMRect { return n.layout }

// SetStyle replaces the element's computed overflow style.
func (n *node) SetStyle(s dom.Style) { n.style = s }

// ScrollTo sets the scroll offset and dispatches a scroll event at the
// element. Descendants move by the negated delta.
func (n *node) ScrollTo(left, top float64) {
	n.scrollLeft = left
	n.scrollTop = top
	n.doc.dispatch(n, dom.EventScroll)
}

// DispatchEvent dispatches an event of the given type at the element.
func (n *node) DispatchEvent(eventType string) {
	n.doc.dispatch(n, eventType)
}

func (n *node) notifyResize() {
	for _, ro := range n.doc.observers {
		if ro.observes(n) {
			ro.record(n)
		}
	}
}

// Element is an HTML element.
type Element struct {
	node

	offsetWidth  *float64
	offsetHeight *float64
}

// OffsetWidth implements dom.OffsetSizer. It defaults to the layout width.
func (e *Element) OffsetWidth() float64 {
	if e.offsetWidth != nil {
		return *e.offsetWidth
	}
	return e.layout.Width
}

// OffsetHeight implements dom.OffsetSizer. It defaults to the layout height.
func (e *Element) OffsetHeight() float64 {
	if e.offsetHeight != nil {
		return *e.offsetHeight
	}
	return e.layout.Height
}

// SetOffsetSize overrides the offset size, modelling a CSS transform that
// scales the border box without changing the layout box.
func (e *Element) SetOffsetSize(width, height float64) {
	e.offsetWidth = &width
	e.offsetHeight = &height
}

// SVGElement is an SVG element. It has no offset size model.
type SVGElement struct {
	node
}

var (
	_ dom.Element     = (*Element)(nil)
	_ dom.OffsetSizer = (*Element)(nil)
	_ dom.Element     = (*SVGElement)(nil)
	_ Node            = (*Element)(nil)
	_ Node            = (*SVGElement)(nil)
)
