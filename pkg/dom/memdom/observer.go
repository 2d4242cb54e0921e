package memdom

import "github.com/vango-dev/measure/pkg/dom"

type resizeObserver struct {
	doc          *Document
	cb           dom.ResizeObserverCallback
	targets      []*node
	entries      []*node
	disconnected bool
}

// NewResizeObserver creates a resize observer bound to the document. Like
// the browser's, it reports an initial observation for every observed
// target on the next Flush.
func (d *Document) NewResizeObserver(cb dom.ResizeObserverCallback) dom.ResizeObserver {
	ro := &resizeObserver{doc: d, cb: cb}
	d.observers = append(d.observers, ro)
	d.observersCreated++
	return ro
}

func (ro *resizeObserver) Observe(target dom.Element) {
	h, ok := target.(holder)
	if !ok || ro.disconnected {
		return
	}
	n := h.base()
	if ro.observes(n) {
		return
	}
	ro.targets = append(ro.targets, n)
	ro.record(n)
}

func (ro *resizeObserver) Unobserve(target dom.Element) {
	h, ok := target.(holder)
	if !ok {
		return
	}
	n := h.base()
	for i, t := range ro.targets {
		if t == n {
			ro.targets = append(ro.targets[:i], ro.targets[i+1:]...)
			break
		}
	}
	for i, e := range ro.entries {
		if e == n {
			ro.entries = append(ro.entries[:i], ro.entries[i+1:]...)
			break
		}
	}
}

func (ro *resizeObserver) Disconnect() {
	if ro.disconnected {
		return
	}
	ro.disconnected = true
	ro.targets = nil
	ro.entries = nil
	ro.doc.removeObserver(ro)
}

func (ro *resizeObserver) observes(n *node) bool {
	for _, t := range ro.targets {
		if t == n {
			return true
		}
	}
	return false
}

func (ro *resizeObserver) record(n *node) {
	for _, e := range ro.entries {
		if e == n {
			return
		}
	}
	ro.entries = append(ro.entries, n)
	ro.doc.queue(ro)
}

func (ro *resizeObserver) takeEntries() []dom.ResizeObserverEntry {
	out := make([]dom.ResizeObserverEntry, 0, len(ro.entries))
	for _, n := range ro.entries {
		out = append(out, dom.ResizeObserverEntry{
			Target:      n.self,
			ContentRect: dom.NewDOMRect(0, 0, n.layout.Width, n.layout.Height),
		})
	}
	ro.entries = nil
	return out
}
