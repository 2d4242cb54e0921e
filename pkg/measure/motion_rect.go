package measure

import "github.com/vango-dev/measure/pkg/motion"

// MotionRect exposes the tracked geometry as eight animatable values.
// Callers read and subscribe; only the Measure that owns it writes.
type MotionRect struct {
	Left   *motion.Value
	Top    *motion.Value
	Width  *motion.Value
	Height *motion.Value
	Bottom *motion.Value
	Right  *motion.Value
	X      *motion.Value
	Y      *motion.Value
}

func newMotionRect(opts ...motion.Option) *MotionRect {
	return &MotionRect{
		Left:   motion.New(0, opts...),
		Top:    motion.New(0, opts...),
		Width:  motion.New(0, opts...),
		Height: motion.New(0, opts...),
		Bottom: motion.New(0, opts...),
		Right:  motion.New(0, opts...),
		X:      motion.New(0, opts...),
		Y:      motion.New(0, opts...),
	}
}

// Value returns the channel for f, or nil for an unknown field.
func (r *MotionRect) Value(f Field) *motion.Value {
	switch f {
	case FieldLeft:
		return r.Left
	case FieldTop:
		return r.Top
	case FieldWidth:
		return r.Width
	case FieldHeight:
		return r.Height
	case FieldBottom:
		return r.Bottom
	case FieldRight:
		return r.Right
	case FieldX:
		return r.X
	case FieldY:
		return r.Y
	}
	return nil
}

// Each calls fn for every channel in publish order.
func (r *MotionRect) Each(fn func(Field, *motion.Value)) {
	for _, f := range Fields {
		fn(f, r.Value(f))
	}
}

// Get reads the current value of every channel. Mid-animation this is an
// interpolated rectangle.
func (r *MotionRect) Get() Rect {
	return Rect{
		X:      r.X.Get(),
		Y:      r.Y.Get(),
		Width:  r.Width.Get(),
		Height: r.Height.Get(),
		Top:    r.Top.Get(),
		Right:  r.Right.Get(),
		Bottom: r.Bottom.Get(),
		Left:   r.Left.Get(),
	}
}

// Target reads the value every channel is heading to.
func (r *MotionRect) Target() Rect {
	return Rect{
		X:      r.X.Target(),
		Y:      r.Y.Target(),
		Width:  r.Width.Target(),
		Height: r.Height.Target(),
		Top:    r.Top.Target(),
		Right:  r.Right.Target(),
		Bottom: r.Bottom.Target(),
		Left:   r.Left.Target(),
	}
}

// jump writes b without animation. Subscribers run once the whole
// rectangle is written.
func (r *MotionRect) jump(b Rect) {
	motion.Batch(func() {
		for _, f := range Fields {
			r.Value(f).Jump(b.Get(f))
		}
	})
}

// set writes b through each channel's transition.
func (r *MotionRect) set(b Rect) {
	motion.Batch(func() {
		for _, f := range Fields {
			r.Value(f).Set(b.Get(f))
		}
	})
}

func (r *MotionRect) stop() {
	r.Each(func(_ Field, v *motion.Value) { v.Stop() })
}
