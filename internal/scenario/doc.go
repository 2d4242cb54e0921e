// Package scenario loads and replays YAML geometry scenarios.
//
// A scenario declares an element tree with layout rectangles and overflow
// styles, names the element to track, and lists steps that mutate the
// tree, scroll, resize the window or let time pass. A Runner replays the
// steps against an in-memory document and reports the published bounds
// after each one.
//
//	name: card in a scrolling panel
//	viewport: {width: 1024, height: 768}
//	options:
//	  scroll: true
//	  debounce: 50ms
//	elements:
//	  - id: panel
//	    overflow: scroll
//	    rect: {x: 0, y: 0, width: 400, height: 300}
//	    children:
//	      - id: card
//	        rect: {x: 10, y: 120, width: 200, height: 80}
//	target: card
//	steps:
//	  - mount
//	  - flush
//	  - advance: 50ms
//	  - scroll: {id: panel, top: 40}
//	  - advance: 50ms
//
// Steps run on a Driver: ManualDriver replays instantly on a virtual
// clock, LoopDriver replays in real time on a loop.Loop.
package scenario
