package memdom

import "github.com/vango-dev/measure/pkg/dom"

type phase uint8

const (
	phaseCapture phase = iota + 1
	phaseTarget
	phaseBubble
)

type registration struct {
	eventType string
	listener  *dom.Listener
	capture   bool
	passive   bool
}

// listenerSet is an ordered list of registrations on one event target.
type listenerSet struct {
	regs []registration
}

func (s *listenerSet) add(eventType string, l *dom.Listener, opts dom.ListenerOptions) {
	if l == nil {
		return
	}
	for _, r := range s.regs {
		if r.eventType == eventType && r.listener == l && r.capture == opts.Capture {
			return
		}
	}
	s.regs = append(s.regs, registration{
		eventType: eventType,
		listener:  l,
		capture:   opts.Capture,
		passive:   opts.Passive,
	})
}

func (s *listenerSet) remove(eventType string, l *dom.Listener, capture bool) {
	for i, r := range s.regs {
		if r.eventType == eventType && r.listener == l && r.capture == capture {
			s.regs = append(s.regs[:i], s.regs[i+1:]...)
			return
		}
	}
}

func (s *listenerSet) fire(ev dom.Event, p phase) {
	regs := make([]registration, len(s.regs))
	copy(regs, s.regs)

	for _, r := range regs {
		if r.eventType != ev.Type {
			continue
		}
		switch p {
		case phaseCapture:
			if !r.capture {
				continue
			}
		case phaseBubble:
			if r.capture {
				continue
			}
		}
		r.listener.Handle(ev)
	}
}

func (s *listenerSet) count(eventType string) int {
	n := 0
	for _, r := range s.regs {
		if r.eventType == eventType {
			n++
		}
	}
	return n
}

// Registration describes one listener as seen by tests.
type Registration struct {
	Capture bool
	Passive bool
}

func (s *listenerSet) describe(eventType string) []Registration {
	var out []Registration
	for _, r := range s.regs {
		if r.eventType == eventType {
			out = append(out, Registration{Capture: r.capture, Passive: r.passive})
		}
	}
	return out
}
