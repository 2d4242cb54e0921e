// Package memdom is an in-memory DOM host for the measuring engine.
//
// It keeps a tree of elements with absolute layout rectangles, scroll
// offsets and overflow styles, dispatches events along the capture path
// (window first, then ancestors, then the target) and queues ResizeObserver
// notifications until Flush is called, the same way a browser delivers
// them after layout.
//
//	doc := memdom.NewDocument()
//	scroller := doc.CreateElement("div")
//	scroller.SetStyle(dom.Style{Overflow: dom.OverflowScroll})
//	doc.BodyElement().AppendChild(scroller)
//
//	box := doc.CreateElement("div")
//	box.SetRect(10, 20, 100, 50)
//	scroller.AppendChild(box)
//
//	scroller.ScrollTo(0, 5) // box now measures at y=15, scroll fires
//	doc.Flush()             // deliver pending resize observations
//
// memdom is single-threaded like a real document: callers must not use one
// Document from several goroutines at once.
package memdom
