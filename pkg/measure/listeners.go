package measure

import "github.com/vango-dev/measure/pkg/dom"

var scrollListenerOptions = dom.ListenerOptions{Capture: true, Passive: true}

// detach removes scroll-ancestor listeners and the resize observer. Safe
// to call with nothing attached.
func (m *Measure) detach() {
	st := &m.state
	if st.registered != nil {
		for _, el := range st.registered {
			el.RemoveEventListener(dom.EventScroll, st.scrollListener, true)
		}
		m.opts.Metrics.addScrollListeners(-len(st.registered))
		st.registered = nil
		st.scrollListener = nil
	}

	if st.resizeObserver != nil {
		st.resizeObserver.Disconnect()
		st.resizeObserver = nil
	}
}

// attach observes the tracked element and, with scroll tracking on,
// listens for scroll on each discovered ancestor. The resize observer
// reports through the scroll window.
func (m *Measure) attach() {
	st := &m.state
	if st.element == nil {
		return
	}

	st.resizeObserver = m.newObserver(func([]dom.ResizeObserverEntry) {
		m.Dispatch(TriggerResizeObserved)
	})
	st.resizeObserver.Observe(st.element)

	if m.opts.Scroll && len(st.scrollContainers) > 0 {
		l := m.h.ancestorScroll
		for _, el := range st.scrollContainers {
			el.AddEventListener(dom.EventScroll, l, scrollListenerOptions)
		}
		st.registered = append([]dom.Element(nil), st.scrollContainers...)
		st.scrollListener = l
		m.opts.Metrics.addScrollListeners(len(st.registered))
	}
}

// windowBinding records the window listeners currently registered.
type windowBinding struct {
	target dom.Window
	resize *dom.Listener
	scroll *dom.Listener
}

// bindWindow listens for window resize and, with scroll tracking on,
// capturing window scroll.
func (m *Measure) bindWindow() {
	if !dom.Interactive(m.host) {
		return
	}
	w := m.host.Window()

	b := windowBinding{target: w, resize: m.h.windowResize}
	w.AddEventListener(dom.EventResize, b.resize, dom.ListenerOptions{})
	if m.opts.Scroll {
		b.scroll = m.h.windowScroll
		w.AddEventListener(dom.EventScroll, b.scroll, scrollListenerOptions)
	}
	m.win = b
}

func (m *Measure) unbindWindow() {
	b := m.win
	if b.target == nil {
		return
	}
	b.target.RemoveEventListener(dom.EventResize, b.resize, false)
	if b.scroll != nil {
		b.target.RemoveEventListener(dom.EventScroll, b.scroll, true)
	}
	m.win = windowBinding{}
}
