package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/measure/internal/errors"
	"github.com/vango-dev/measure/pkg/motion"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Serve.Port != DefaultPort {
		t.Errorf("Serve.Port = %d, want %d", cfg.Serve.Port, DefaultPort)
	}
	if cfg.Serve.Host != DefaultHost {
		t.Errorf("Serve.Host = %q, want %q", cfg.Serve.Host, DefaultHost)
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, DefaultMetricsPath)
	}
	if cfg.Measure.Transition.FrameInterval.D() != motion.DefaultFrameInterval {
		t.Errorf("FrameInterval = %v, want %v", cfg.Measure.Transition.FrameInterval.D(), motion.DefaultFrameInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if err == nil {
		t.Fatal("Expected error for missing config")
	}
	var merr *errors.MeasureError
	if !stderrors.As(err, &merr) || merr.Code != "M020" {
		t.Errorf("missing config error = %v, want M020", err)
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "measure": {
    "debounce": {"resize": "100ms", "scroll": 16},
    "scroll": true,
    "transition": {"duration": "200ms", "ease": "linear"}
  },
  "serve": {"port": 9090},
  "log": {"level": "debug"}
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if got := cfg.Measure.Debounce.Resize.D(); got != 100*time.Millisecond {
		t.Errorf("Debounce.Resize = %v, want 100ms", got)
	}
	if got := cfg.Measure.Debounce.Scroll.D(); got != 16*time.Millisecond {
		t.Errorf("Debounce.Scroll = %v, want 16ms", got)
	}
	if !cfg.Measure.Scroll {
		t.Error("Measure.Scroll should be true")
	}
	if cfg.Serve.Port != 9090 {
		t.Errorf("Serve.Port = %d, want 9090", cfg.Serve.Port)
	}
	if cfg.Serve.Host != DefaultHost {
		t.Errorf("Serve.Host = %q, want default", cfg.Serve.Host)
	}
	if level, err := cfg.LogLevel(); err != nil || level != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, %v", level, err)
	}
	if cfg.Path() != configPath || cfg.Dir() != tmpDir {
		t.Errorf("Path() = %q, Dir() = %q", cfg.Path(), cfg.Dir())
	}

	tr := cfg.Transition()
	if tr.Duration != 200*time.Millisecond || tr.Ease == nil || tr.Ease(0.5) != 0.5 {
		t.Errorf("Transition() = %+v, want 200ms linear", tr)
	}
	if got := len(cfg.MeasureOptions()); got != 4 {
		t.Errorf("MeasureOptions() returned %d options, want 4", got)
	}
}

func TestLoadSingleDebounce(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(path, []byte(`{"measure": {"debounce": "50ms"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	d := cfg.Measure.Debounce
	if d.Resize.D() != 50*time.Millisecond || d.Scroll.D() != 50*time.Millisecond {
		t.Errorf("Debounce = %+v, want 50ms for both windows", d)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(path, []byte(`{"measure": {"debounce": "soon"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("Expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "M020") {
		t.Errorf("error = %v, want M020", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative debounce", func(c *Config) { c.Measure.Debounce.Scroll = -1 }},
		{"negative transition", func(c *Config) { c.Measure.Transition.Duration = -1 }},
		{"unknown easing", func(c *Config) { c.Measure.Transition.Ease = "bounce" }},
		{"port out of range", func(c *Config) { c.Serve.Port = 70000 }},
		{"negative step interval", func(c *Config) { c.Serve.StepInterval = -1 }},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			var merr *errors.MeasureError
			if !stderrors.As(err, &merr) || merr.Code != "M021" {
				t.Errorf("Validate() = %v, want M021", err)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Measure.Debounce = DebounceConfig{Resize: Duration(time.Second), Scroll: Duration(10 * time.Millisecond)}
	cfg.Measure.OffsetSize = true
	if err := cfg.Save(); err == nil {
		t.Error("Save without a path should fail")
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Measure.Debounce != cfg.Measure.Debounce {
		t.Errorf("Debounce = %+v, want %+v", loaded.Measure.Debounce, cfg.Measure.Debounce)
	}
	if !loaded.Measure.OffsetSize {
		t.Error("OffsetSize should round-trip")
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	root, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	want, _ := filepath.Abs(tmpDir)
	if root != want {
		t.Errorf("FindProjectRoot() = %q, want %q", root, want)
	}
	if !Exists(tmpDir) || Exists(nested) {
		t.Error("Exists() mismatch")
	}
}

func TestAddress(t *testing.T) {
	cfg := New()
	cfg.Serve.Host = "0.0.0.0"
	cfg.Serve.Port = 8081
	if got := cfg.Address(); got != "0.0.0.0:8081" {
		t.Errorf("Address() = %q", got)
	}
}
