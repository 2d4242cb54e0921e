package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/measure/internal/errors"
	"github.com/vango-dev/measure/pkg/measure"
	"github.com/vango-dev/measure/pkg/motion"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "measure.json"

	// DefaultPort is the default live server port.
	DefaultPort = 7070

	// DefaultHost is the default live server host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is where the live server exposes Prometheus metrics.
	DefaultMetricsPath = "/metrics"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "measure"
)

// Easing names accepted by TransitionConfig.Ease.
const (
	EaseLinear    = "linear"
	EaseOut       = "easeOut"
	EaseInOut     = "easeInOut"
	defaultEasing = EaseOut
)

// Config represents the complete measure.json configuration.
type Config struct {
	// Measure configures every Measure the CLI creates.
	Measure MeasureConfig `json:"measure"`

	// Serve configures the live geometry server.
	Serve ServeConfig `json:"serve"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `json:"metrics"`

	// Log configures the CLI logger.
	Log LogConfig `json:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MeasureConfig mirrors the library options.
type MeasureConfig struct {
	// Debounce is a single window ("50ms", 50) or a
	// {"resize": ..., "scroll": ...} pair.
	Debounce DebounceConfig `json:"debounce"`

	// Scroll enables scroll tracking.
	Scroll bool `json:"scroll,omitempty"`

	// OffsetSize reports offsetWidth/offsetHeight.
	OffsetSize bool `json:"offsetSize,omitempty"`

	// Transition is used for animated (non-first) publishes.
	Transition TransitionConfig `json:"transition"`
}

// DebounceConfig holds the two debounce windows.
type DebounceConfig struct {
	Resize Duration `json:"resize"`
	Scroll Duration `json:"scroll"`
}

// UnmarshalJSON accepts a single duration for both windows or an object.
func (d *DebounceConfig) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		type plain DebounceConfig
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*d = DebounceConfig(p)
		return nil
	}

	var both Duration
	if err := both.UnmarshalJSON(data); err != nil {
		return err
	}
	d.Resize = both
	d.Scroll = both
	return nil
}

// TransitionConfig describes a motion.Transition.
type TransitionConfig struct {
	// Duration of animated publishes. Zero publishes instantly.
	Duration Duration `json:"duration"`

	// FrameInterval between animation frames.
	FrameInterval Duration `json:"frameInterval"`

	// Ease is linear, easeOut or easeInOut.
	Ease string `json:"ease,omitempty"`
}

// ServeConfig contains live server settings.
type ServeConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// StepInterval is the pause between scenario steps while serving.
	StepInterval Duration `json:"stepInterval"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes metrics on the live server.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`

	// Path is the HTTP path for the metrics endpoint.
	Path string `json:"path,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// Duration is a time.Duration that decodes from "250ms" or from a number
// of milliseconds.
type Duration time.Duration

// D returns the standard library duration.
func (d Duration) D() time.Duration { return time.Duration(d) }

// MarshalJSON encodes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON decodes a duration string or a millisecond count.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}

	var ms float64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("invalid duration %s: want a string like \"50ms\" or milliseconds", data)
	}
	*d = Duration(ms * float64(time.Millisecond))
	return nil
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Measure: MeasureConfig{
			Transition: TransitionConfig{
				FrameInterval: Duration(motion.DefaultFrameInterval),
				Ease:          defaultEasing,
			},
		},
		Serve: ServeConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			StepInterval: Duration(250 * time.Millisecond),
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
			Path:      DefaultMetricsPath,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for measure.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("M020").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config to use defaults")
		}
		return nil, errors.New("M020").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("M020").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("M020").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("M020").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Measure.Transition.FrameInterval == 0 {
		c.Measure.Transition.FrameInterval = Duration(motion.DefaultFrameInterval)
	}
	if c.Measure.Transition.Ease == "" {
		c.Measure.Transition.Ease = defaultEasing
	}

	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	invalid := func(detail string) error {
		return errors.New("M021").WithDetail(detail)
	}

	m := c.Measure
	if m.Debounce.Resize < 0 || m.Debounce.Scroll < 0 {
		return invalid("measure.debounce must not be negative")
	}
	if m.Transition.Duration < 0 || m.Transition.FrameInterval < 0 {
		return invalid("measure.transition durations must not be negative")
	}
	if _, ok := easings[m.Transition.Ease]; !ok {
		return invalid("measure.transition.ease must be one of linear, easeOut, easeInOut; got " + strconv.Quote(m.Transition.Ease))
	}

	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return invalid("Port must be between 0 and 65535")
	}
	if c.Serve.StepInterval < 0 {
		return invalid("serve.stepInterval must not be negative")
	}

	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("metrics.path must start with /")
	}

	if _, err := c.LogLevel(); err != nil {
		return invalid(err.Error())
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log.format must be text or json; got " + strconv.Quote(c.Log.Format))
	}
	return nil
}

var easings = map[string]motion.Easing{
	EaseLinear: motion.Linear,
	EaseOut:    motion.EaseOut,
	EaseInOut:  motion.EaseInOut,
}

// Transition returns the configured motion transition.
func (c *Config) Transition() motion.Transition {
	t := c.Measure.Transition
	return motion.Transition{
		Duration:      t.Duration.D(),
		FrameInterval: t.FrameInterval.D(),
		Ease:          easings[t.Ease],
	}
}

// MeasureOptions converts the measure section to library options.
func (c *Config) MeasureOptions() []measure.Option {
	m := c.Measure
	return []measure.Option{
		measure.WithDebounceWindows(m.Debounce.Resize.D(), m.Debounce.Scroll.D()),
		measure.WithScroll(m.Scroll),
		measure.WithOffsetSize(m.OffsetSize),
		measure.WithValueOptions(motion.WithTransition(c.Transition())),
	}
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Address returns the address string for the live server.
func (c *Config) Address() string {
	return c.Serve.Host + ":" + strconv.Itoa(c.Serve.Port)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing measure.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("M020").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest measure.json at
// or above the working directory. Without one it returns the defaults.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return New(), nil
	}

	return Load(root)
}
