package dom

import "errors"

// ErrDetached is returned when measuring an element that is no longer
// connected to its document.
var ErrDetached = errors.New("dom: element is not connected")

// Element is a measurable node in the host document.
//
// Implementations must be comparable (pointer types in practice): the
// engine uses == to decide whether a newly attached element is the one it
// already tracks.
type Element interface {
	EventTarget

	// GetBoundingClientRect returns the element's border box relative to
	// the viewport. It returns ErrDetached (or another error) when the
	// element cannot be measured.
	GetBoundingClientRect() (DOMRect, error)

	// ParentElement returns the parent element, or nil at the root.
	ParentElement() Element
}

// OffsetSizer is implemented by elements with a layout-box size model
// (HTML elements, not SVG). Offset sizes ignore transforms.
type OffsetSizer interface {
	OffsetWidth() float64
	OffsetHeight() float64
}

// Overflow values that make an element a scroll container.
const (
	OverflowVisible = "visible"
	OverflowHidden  = "hidden"
	OverflowAuto    = "auto"
	OverflowScroll  = "scroll"
)

// Style is the subset of a computed style the engine reads.
type Style struct {
	Overflow  string
	OverflowX string
	OverflowY string
}

// Scrollable reports whether any overflow axis is auto or scroll.
func (s Style) Scrollable() bool {
	for _, v := range [...]string{s.Overflow, s.OverflowX, s.OverflowY} {
		if v == OverflowAuto || v == OverflowScroll {
			return true
		}
	}
	return false
}
