package measure

import "github.com/vango-dev/measure/pkg/dom"

// FindScrollContainers returns the scrollable elements from el up to its
// outermost ancestor, nearest first. The walk starts at el itself, so a
// scrollable el is its own first container. An element is scrollable when
// its computed overflow, overflow-x or overflow-y is auto or scroll. The
// walk stops at the document body, which is never included.
func FindScrollContainers(host dom.Host, el dom.Element) []dom.Element {
	if host == nil || el == nil {
		return nil
	}
	body := host.Body()

	var result []dom.Element
	for p := el; p != nil; p = p.ParentElement() {
		if body != nil && p == body {
			break
		}
		if host.ComputedStyle(p).Scrollable() {
			result = append(result, p)
		}
	}
	return result
}
