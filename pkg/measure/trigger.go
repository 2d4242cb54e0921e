package measure

import "github.com/vango-dev/measure/pkg/dom"

// Trigger identifies what asked for a re-measurement.
type Trigger uint8

const (
	// TriggerResizeObserved is a resize-observer callback for the element.
	TriggerResizeObserved Trigger = iota + 1

	// TriggerAncestorScrolled is a scroll event on a scroll ancestor.
	TriggerAncestorScrolled

	// TriggerWindowResized is a window resize event.
	TriggerWindowResized

	// TriggerWindowScrolled is a window-level (capturing) scroll event.
	TriggerWindowScrolled

	// TriggerForced is an explicit ForceRefresh.
	TriggerForced
)

// String returns the trigger's metric label.
func (t Trigger) String() string {
	switch t {
	case TriggerResizeObserved:
		return "resize_observed"
	case TriggerAncestorScrolled:
		return "ancestor_scrolled"
	case TriggerWindowResized:
		return "window_resized"
	case TriggerWindowScrolled:
		return "window_scrolled"
	case TriggerForced:
		return "forced"
	default:
		return "unknown"
	}
}

type route uint8

const (
	routeDirect route = iota
	routeResize
	routeScroll
)

// routes maps each trigger to the window that debounces it. The resize
// observer shares the scroll window; only window resizes use the resize
// window.
var routes = map[Trigger]route{
	TriggerResizeObserved:   routeScroll,
	TriggerAncestorScrolled: routeScroll,
	TriggerWindowResized:    routeResize,
	TriggerWindowScrolled:   routeScroll,
	TriggerForced:           routeDirect,
}

// handlers is one generation of debounced callbacks and the listener
// handles bound to them. Configure replaces the whole generation, which
// changes listener identity and forces a rebind.
type handlers struct {
	resize *debouncer
	scroll *debouncer

	ancestorScroll *dom.Listener
	windowResize   *dom.Listener
	windowScroll   *dom.Listener
}

func (m *Measure) newHandlers() handlers {
	return handlers{
		resize: newDebouncer(m.opts.Scheduler, m.opts.ResizeDebounce, m.detect),
		scroll: newDebouncer(m.opts.Scheduler, m.opts.ScrollDebounce, m.detect),

		ancestorScroll: dom.NewListener(func(dom.Event) { m.Dispatch(TriggerAncestorScrolled) }),
		windowResize:   dom.NewListener(func(dom.Event) { m.Dispatch(TriggerWindowResized) }),
		windowScroll:   dom.NewListener(func(dom.Event) { m.Dispatch(TriggerWindowScrolled) }),
	}
}

// Dispatch routes a trigger to the change detector through its debounce
// window. Hosts and tests can inject synthetic triggers with it.
func (m *Measure) Dispatch(t Trigger) {
	m.opts.Metrics.recordTrigger(t)

	switch routes[t] {
	case routeResize:
		m.h.resize.call(t)
	case routeScroll:
		m.h.scroll.call(t)
	default:
		m.detect(t)
	}
}

// Flush runs any pending debounced detection immediately.
func (m *Measure) Flush() {
	m.h.resize.flush()
	m.h.scroll.flush()
}

// Pending reports whether a debounced detection is waiting to fire.
func (m *Measure) Pending() bool {
	return m.h.resize.pending() || m.h.scroll.pending()
}
