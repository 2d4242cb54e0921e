// Package errors provides coded, actionable errors for the measure module.
//
// Every error has a code (e.g. "M001") registered with a category, a short
// message, a longer detail and a documentation link. Errors wrap their
// cause so errors.Is/As keep working across the package boundary:
//
//	err := errors.New("M001").
//	    WithSuggestion("pass measure.WithPolyfill(...)").
//	    Wrap(measure.ErrNoResizeObserver)
//
// # Categories
//
//   - setup: fatal configuration of a Measure
//   - scenario: scenario file problems (parse errors carry file:line)
//   - config: measure.json problems
//   - cli: command-line usage errors
//
// # Terminal Output
//
// Format renders an error for humans, with source context for located
// errors:
//
//	ERROR M010: Scenario parse error
//
//	  demo.yaml:7:3
//
//	       6 │ steps:
//	  →    7 │   - resize: box
//	         │   ^
//	       8 │     width: 200
//
//	  Hint: resize steps take an element id and width/height
package errors
