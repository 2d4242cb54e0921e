package measure

import (
	"log/slog"
	"reflect"

	"github.com/vango-dev/measure/pkg/dom"
	"github.com/vango-dev/measure/pkg/motion"
)

// RefFunc is the attachment callback handed to whatever owns the element.
type RefFunc func(el dom.Element)

// state is the tracking record owned by one Measure.
type state struct {
	element             dom.Element
	measuredAtLeastOnce bool

	// scrollContainers are the discovered scroll ancestors of element.
	scrollContainers []dom.Element

	// registered are the ancestors currently carrying scrollListener.
	registered     []dom.Element
	scrollListener *dom.Listener

	resizeObserver dom.ResizeObserver
	lastBounds     Rect
}

// Stats counts what a Measure has done.
type Stats struct {
	Detections  int
	Jumps       int
	Sets        int
	Unchanged   int
	Unmounted   int
	Failed      int
	Attachments int
}

// Measure tracks one element's geometry.
type Measure struct {
	host        dom.Host
	opts        Options
	newObserver dom.ResizeObserverFactory
	logger      *slog.Logger

	bounds   *MotionRect
	state    state
	h        handlers
	win      windowBinding
	stats    Stats
	mounted  bool
	disposed bool
}

// Use creates an unmounted Measure for elements of host. A nil host is a
// non-interactive (server rendering) environment.
//
// Use fails with ErrNoResizeObserver when host is interactive, has no
// native ResizeObserver and no polyfill is configured. Non-interactive
// hosts fall back to an observer that never fires. It fails with
// ErrNoScheduler when a debounce window is set without WithScheduler.
func Use(host dom.Host, opts ...Option) (*Measure, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.fill()
	if err := o.validate(); err != nil {
		return nil, err
	}

	factory := o.Polyfill
	if factory == nil {
		switch {
		case !dom.Interactive(host):
			factory = dom.NewNopResizeObserver
		case host.ResizeObserver() != nil:
			factory = host.ResizeObserver()
		default:
			return nil, noResizeObserverError()
		}
	}

	valueOpts := append([]motion.Option{motion.WithScheduler(o.Scheduler)}, o.ValueOptions...)

	m := &Measure{
		host:        host,
		opts:        o,
		newObserver: factory,
		logger:      o.Logger.With("component", "measure"),
		bounds:      newMotionRect(valueOpts...),
	}
	m.state.lastBounds = m.bounds.Get()
	m.h = m.newHandlers()
	return m, nil
}

// Result returns the attachment callback, the reactive bounds and the
// forced refresh function.
func (m *Measure) Result() (RefFunc, *MotionRect, func()) {
	return m.Ref, m.bounds, m.ForceRefresh
}

// Bounds returns the reactive output.
func (m *Measure) Bounds() *MotionRect { return m.bounds }

// Element returns the tracked element, or nil.
func (m *Measure) Element() dom.Element { return m.state.element }

// ScrollContainers returns the discovered scroll ancestors of the tracked
// element, nearest first.
func (m *Measure) ScrollContainers() []dom.Element {
	return append([]dom.Element(nil), m.state.scrollContainers...)
}

// Mounted reports whether publishing is enabled.
func (m *Measure) Mounted() bool { return m.mounted }

// Stats returns activity counters.
func (m *Measure) Stats() Stats { return m.stats }

// Ref designates the tracked element. A nil element and the element
// already tracked are ignored; a new element replaces the old one and
// rebuilds every listener.
func (m *Measure) Ref(el dom.Element) {
	if m.disposed || isNil(el) || el == m.state.element {
		return
	}

	m.detach()
	m.state.element = el
	m.state.measuredAtLeastOnce = false
	m.state.scrollContainers = FindScrollContainers(m.host, el)
	m.attach()

	m.stats.Attachments++
	m.opts.Metrics.recordAttach()
	m.logger.Debug("element attached",
		"scroll_containers", len(m.state.scrollContainers),
		"scroll", m.opts.Scroll)
}

// ForceRefresh measures synchronously, bypassing both debounce windows.
func (m *Measure) ForceRefresh() {
	m.Dispatch(TriggerForced)
}

// Mount enables publishing and binds window listeners. Element listeners
// are rebuilt.
func (m *Measure) Mount() {
	if m.disposed || m.mounted {
		return
	}
	m.mounted = true
	m.bindWindow()
	m.detach()
	m.attach()
	m.logger.Debug("mounted")
}

// Unmount disables publishing and removes every listener. The tracked
// element is kept; a later Mount resumes tracking it.
func (m *Measure) Unmount() {
	if !m.mounted {
		return
	}
	m.mounted = false
	m.unbindWindow()
	m.detach()
	m.logger.Debug("unmounted")
}

// Dispose unmounts, drops pending debounced detections, stops in-flight
// animations and makes every further call a no-op.
func (m *Measure) Dispose() {
	if m.disposed {
		return
	}
	m.Unmount()
	m.detach()
	m.h.resize.clear()
	m.h.scroll.clear()
	m.bounds.stop()
	m.disposed = true
}

// Configure changes the debounce windows, scroll tracking and offset
// sizing. Debounced callbacks are rebuilt, so every listener is rebound.
// Other options are fixed by Use and ignored here. Pending debounced
// detections from the previous configuration still fire.
//
// Configure fails with ErrNoScheduler, leaving the Measure unchanged, when
// it would set a debounce window on a Measure created without a scheduler.
func (m *Measure) Configure(opts ...Option) error {
	if m.disposed {
		return nil
	}
	next := m.opts
	for _, opt := range opts {
		opt(&next)
	}
	next.Scheduler = m.opts.Scheduler
	next.realtime = m.opts.realtime
	if err := next.validate(); err != nil {
		return err
	}
	m.opts.ResizeDebounce = next.ResizeDebounce
	m.opts.ScrollDebounce = next.ScrollDebounce
	m.opts.Scroll = next.Scroll
	m.opts.OffsetSize = next.OffsetSize

	if m.mounted {
		m.unbindWindow()
	}
	m.detach()
	m.h = m.newHandlers()
	if m.mounted {
		m.bindWindow()
	}
	m.attach()
	return nil
}

// isNil reports whether el is nil or a typed nil pointer.
func isNil(el dom.Element) bool {
	if el == nil {
		return true
	}
	v := reflect.ValueOf(el)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
