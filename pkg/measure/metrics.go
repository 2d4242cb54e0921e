package measure

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "measure").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for detector duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "measure",
		// Detection is a synchronous layout read: microseconds to a few ms.
		Buckets:  []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics collects change-detection metrics. One Metrics may be shared by
// many Measure instances. A nil *Metrics records nothing.
//
// Metrics collected:
//   - measure_triggers_total: triggers by kind
//   - measure_detections_total: detector runs by outcome
//   - measure_detection_duration_seconds: detector run time
//   - measure_attachments_total: element (re)attachments
//   - measure_scroll_listeners: scroll listeners currently registered
type Metrics struct {
	triggers          *prometheus.CounterVec
	detections        *prometheus.CounterVec
	detectionDuration prometheus.Histogram
	attachments       prometheus.Counter
	scrollListeners   prometheus.Gauge
}

// NewMetrics registers the metrics. With the default registry, call it
// once per process.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		triggers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "triggers_total",
			Help:        "Change-detection triggers by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"trigger"}),

		detections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "detections_total",
			Help:        "Change-detector runs by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		detectionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "detection_duration_seconds",
			Help:        "Change-detector run time in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		attachments: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "attachments_total",
			Help:        "Elements attached for tracking",
			ConstLabels: config.ConstLabels,
		}),

		scrollListeners: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "scroll_listeners",
			Help:        "Scroll listeners currently registered on scroll ancestors",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) recordTrigger(t Trigger) {
	if m == nil {
		return
	}
	m.triggers.WithLabelValues(t.String()).Inc()
}

func (m *Metrics) recordDetection(o Outcome, d time.Duration) {
	if m == nil {
		return
	}
	m.detections.WithLabelValues(string(o)).Inc()
	m.detectionDuration.Observe(d.Seconds())
}

func (m *Metrics) recordAttach() {
	if m == nil {
		return
	}
	m.attachments.Inc()
}

func (m *Metrics) addScrollListeners(n int) {
	if m == nil || n == 0 {
		return
	}
	m.scrollListeners.Add(float64(n))
}
