package measure

import (
	"errors"

	merrors "github.com/vango-dev/measure/internal/errors"
)

// ErrNoResizeObserver is returned by Use when the host is interactive but
// has neither a native ResizeObserver nor a configured polyfill.
var ErrNoResizeObserver = errors.New("measure: host does not support ResizeObserver")

// ErrNoScheduler is returned by Use and Configure when a debounce window is
// above zero and no Scheduler was given.
var ErrNoScheduler = errors.New("measure: debounce window without scheduler")

func noResizeObserverError() error {
	return merrors.New("M001").
		WithSuggestion("pass measure.WithPolyfill(...) with a ResizeObserver implementation").
		Wrap(ErrNoResizeObserver)
}

func noSchedulerError() error {
	return merrors.New("M002").
		WithSuggestion("pass measure.WithScheduler(...) with the host's event loop").
		Wrap(ErrNoScheduler)
}
