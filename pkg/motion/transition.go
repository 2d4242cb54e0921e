package motion

import (
	"math"
	"time"
)

// DefaultFrameInterval is the animation frame period (~60fps).
const DefaultFrameInterval = 16 * time.Millisecond

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseOut decelerates towards the target (cubic).
func EaseOut(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOut accelerates then decelerates (cubic).
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Transition describes how Set moves a value to its target.
// The zero Transition is instant.
type Transition struct {
	// Duration of the animation. Zero or negative means Set writes the
	// target immediately.
	Duration time.Duration

	// FrameInterval between animation frames. Defaults to
	// DefaultFrameInterval.
	FrameInterval time.Duration

	// Ease shapes the progress curve. Defaults to EaseOut.
	Ease Easing
}

// Tween returns an eased transition of the given duration.
func Tween(d time.Duration) Transition {
	return Transition{Duration: d, Ease: EaseOut}
}

// Instant reports whether the transition writes without frames.
func (t Transition) Instant() bool {
	return t.Duration <= 0
}

func (t Transition) frameInterval() time.Duration {
	if t.FrameInterval > 0 {
		return t.FrameInterval
	}
	return DefaultFrameInterval
}

func (t Transition) ease(p float64) float64 {
	if t.Ease == nil {
		return EaseOut(p)
	}
	return t.Ease(p)
}
