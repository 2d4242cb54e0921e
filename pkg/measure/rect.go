package measure

import (
	"fmt"

	"github.com/vango-dev/measure/pkg/dom"
)

// Rect is an immutable snapshot of an element's geometry in viewport
// pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// RectFromDOM builds a snapshot from a bounding client rect.
func RectFromDOM(r dom.DOMRect) Rect {
	return Rect{
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
		Top:    r.Top(),
		Right:  r.Right(),
		Bottom: r.Bottom(),
		Left:   r.Left(),
	}
}

// Equal reports whether all eight fields are exactly equal. There is no
// tolerance: sub-pixel differences count.
func (r Rect) Equal(o Rect) bool {
	return r.X == o.X &&
		r.Y == o.Y &&
		r.Top == o.Top &&
		r.Bottom == o.Bottom &&
		r.Left == o.Left &&
		r.Right == o.Right &&
		r.Width == o.Width &&
		r.Height == o.Height
}

// BoundsEqual is the function form of Rect.Equal.
func BoundsEqual(a, b Rect) bool { return a.Equal(b) }

// Field names the eight geometry channels, in publish order.
type Field string

const (
	FieldLeft   Field = "left"
	FieldTop    Field = "top"
	FieldWidth  Field = "width"
	FieldHeight Field = "height"
	FieldBottom Field = "bottom"
	FieldRight  Field = "right"
	FieldX      Field = "x"
	FieldY      Field = "y"
)

// Fields lists every channel in publish order.
var Fields = [...]Field{FieldLeft, FieldTop, FieldWidth, FieldHeight, FieldBottom, FieldRight, FieldX, FieldY}

// Get returns the named field.
func (r Rect) Get(f Field) float64 {
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
	return 0
}

// String implements fmt.Stringer.
func (r Rect) String() string {
	return fmt.Sprintf("{x:%g y:%g w:%g h:%g t:%g r:%g b:%g l:%g}",
		r.X, r.Y, r.Width, r.Height, r.Top, r.Right, r.Bottom, r.Left)
}
