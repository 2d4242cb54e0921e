package measure

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/measure/pkg/dom"
	"github.com/vango-dev/measure/pkg/loop"
	"github.com/vango-dev/measure/pkg/motion"
)

// Options configures a Measure.
type Options struct {
	// ResizeDebounce is the window for window-resize triggers.
	// Zero means synchronous.
	ResizeDebounce time.Duration

	// ScrollDebounce is the window for scroll and resize-observer
	// triggers. Zero means synchronous.
	ScrollDebounce time.Duration

	// Scroll enables scroll-ancestor and window scroll tracking.
	Scroll bool

	// OffsetSize reports offsetWidth/offsetHeight instead of the bounding
	// rect size for elements that have an offset size model.
	OffsetSize bool

	// Polyfill replaces the host's ResizeObserver constructor.
	Polyfill dom.ResizeObserverFactory

	// Scheduler runs debounce timers and animation frames. It must call
	// back on the host's event loop. Without one, animation frames run on
	// loop.Realtime() and debounce windows above zero are rejected.
	Scheduler loop.Scheduler

	// ValueOptions configure the eight output values (e.g. transition).
	ValueOptions []motion.Option

	Logger  *slog.Logger
	Metrics *Metrics
	Tracer  trace.Tracer

	// realtime is set when fill supplied the Scheduler.
	realtime bool
}

// Option configures a Measure.
type Option func(*Options)

// WithDebounce applies one window to both resize and scroll triggers.
func WithDebounce(d time.Duration) Option {
	return func(o *Options) {
		o.ResizeDebounce = d
		o.ScrollDebounce = d
	}
}

// WithDebounceWindows sets independent resize and scroll windows.
func WithDebounceWindows(resize, scroll time.Duration) Option {
	return func(o *Options) {
		o.ResizeDebounce = resize
		o.ScrollDebounce = scroll
	}
}

// WithScroll enables or disables scroll tracking.
func WithScroll(enabled bool) Option {
	return func(o *Options) {
		o.Scroll = enabled
	}
}

// WithOffsetSize enables or disables the offset size override.
func WithOffsetSize(enabled bool) Option {
	return func(o *Options) {
		o.OffsetSize = enabled
	}
}

// WithPolyfill sets the ResizeObserver constructor to use instead of the
// host's.
func WithPolyfill(f dom.ResizeObserverFactory) Option {
	return func(o *Options) {
		o.Polyfill = f
	}
}

// WithScheduler sets the timer scheduler.
func WithScheduler(s loop.Scheduler) Option {
	return func(o *Options) {
		o.Scheduler = s
	}
}

// WithValueOptions configures the output values.
func WithValueOptions(opts ...motion.Option) Option {
	return func(o *Options) {
		o.ValueOptions = append(o.ValueOptions, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithTracer sets the OpenTelemetry tracer for detector spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		o.Tracer = t
	}
}

func defaultOptions() Options {
	return Options{}
}

func (o *Options) fill() {
	if o.Scheduler == nil {
		o.Scheduler = loop.Realtime()
		o.realtime = true
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Tracer == nil {
		o.Tracer = defaultTracer()
	}
}

// validate rejects debounce windows that would fire off the event loop.
func (o *Options) validate() error {
	if o.realtime && (o.ResizeDebounce > 0 || o.ScrollDebounce > 0) {
		return noSchedulerError()
	}
	return nil
}
