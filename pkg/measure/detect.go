package measure

import (
	"time"

	"github.com/vango-dev/measure/pkg/dom"
)

// Outcome is the result of one change-detector run.
type Outcome string

const (
	OutcomeNoElement Outcome = "no_element"
	OutcomeFailed    Outcome = "failed"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeUnmounted Outcome = "unmounted"
	OutcomeJump      Outcome = "jump"
	OutcomeSet       Outcome = "set"
)

// detect is the change detector. It measures the tracked element and
// publishes when the snapshot differs from the last one.
func (m *Measure) detect(t Trigger) {
	m.stats.Detections++

	el := m.state.element
	if el == nil {
		m.opts.Metrics.recordDetection(OutcomeNoElement, 0)
		return
	}

	start := time.Now()
	span := m.startDetect(t)
	outcome, r, err := m.measureAndPublish(el)
	endDetect(span, outcome, r, err)
	m.opts.Metrics.recordDetection(outcome, time.Since(start))

	switch outcome {
	case OutcomeFailed:
		m.stats.Failed++
		m.logger.Debug("measurement failed", "trigger", t.String(), "error", err)
	case OutcomeUnchanged:
		m.stats.Unchanged++
	case OutcomeUnmounted:
		m.stats.Unmounted++
	case OutcomeJump:
		m.stats.Jumps++
		m.logger.Debug("bounds published", "trigger", t.String(), "mode", "jump", "bounds", r.String())
	case OutcomeSet:
		m.stats.Sets++
		m.logger.Debug("bounds published", "trigger", t.String(), "mode", "set", "bounds", r.String())
	}
}

// snapshot measures el, applying the offset size override.
func (m *Measure) snapshot(el dom.Element) (Rect, error) {
	dr, err := el.GetBoundingClientRect()
	if err != nil {
		return Rect{}, err
	}
	r := RectFromDOM(dr)
	if m.opts.OffsetSize {
		if os, ok := el.(dom.OffsetSizer); ok {
			r.Width = os.OffsetWidth()
			r.Height = os.OffsetHeight()
		}
	}
	return r, nil
}

func (m *Measure) measureAndPublish(el dom.Element) (Outcome, Rect, error) {
	r, err := m.snapshot(el)
	if err != nil {
		return OutcomeFailed, Rect{}, err
	}
	if r.Equal(m.state.lastBounds) {
		return OutcomeUnchanged, r, nil
	}

	// The baseline moves even when nothing is published.
	m.state.lastBounds = r
	if !m.mounted {
		return OutcomeUnmounted, r, nil
	}

	if m.state.measuredAtLeastOnce {
		m.bounds.set(r)
		return OutcomeSet, r, nil
	}
	m.state.measuredAtLeastOnce = true
	m.bounds.jump(r)
	return OutcomeJump, r, nil
}
