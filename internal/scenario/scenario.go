package scenario

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/measure/internal/errors"
	"github.com/vango-dev/measure/pkg/dom"
	"github.com/vango-dev/measure/pkg/measure"
	"github.com/vango-dev/measure/pkg/motion"
)

// Scenario is a parsed scenario file.
type Scenario struct {
	Name string `yaml:"name"`

	// Viewport is the initial window size. Defaults to 1024x768.
	Viewport Size `yaml:"viewport"`

	// Headless makes the document non-interactive.
	Headless bool `yaml:"headless"`

	// NoResizeObserver removes native ResizeObserver support.
	NoResizeObserver bool `yaml:"no_resize_observer"`

	// Options override the runner's measure options.
	Options Options `yaml:"options"`

	Elements []ElementSpec `yaml:"elements"`

	// Target is the id of the element passed to Ref before the first step.
	Target string `yaml:"target"`

	Steps []Step `yaml:"steps"`

	file string
}

// Size is a width and height.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Box is a layout rectangle in document coordinates.
type Box struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ElementSpec declares one element of the tree.
type ElementSpec struct {
	ID  string `yaml:"id"`
	Tag string `yaml:"tag"`

	// SVG creates an element without an offset size model.
	SVG bool `yaml:"svg"`

	Rect Box `yaml:"rect"`

	// OffsetSize overrides offsetWidth/offsetHeight.
	OffsetSize *Size `yaml:"offset_size"`

	Overflow  string `yaml:"overflow"`
	OverflowX string `yaml:"overflow_x"`
	OverflowY string `yaml:"overflow_y"`

	// Detached elements are built but not connected to the body.
	Detached bool `yaml:"detached"`

	Children []ElementSpec `yaml:"children"`
}

func (e ElementSpec) style() dom.Style {
	return dom.Style{Overflow: e.Overflow, OverflowX: e.OverflowX, OverflowY: e.OverflowY}
}

// Options are per-scenario measure options. Unset fields keep the
// runner's values.
type Options struct {
	Scroll         *bool          `yaml:"scroll"`
	OffsetSize     *bool          `yaml:"offset_size"`
	Debounce       *time.Duration `yaml:"debounce"`
	ResizeDebounce *time.Duration `yaml:"resize_debounce"`
	ScrollDebounce *time.Duration `yaml:"scroll_debounce"`

	// Transition is the duration of animated publishes.
	Transition *time.Duration `yaml:"transition"`
}

// MeasureOptions converts the set fields to library options.
func (o Options) MeasureOptions() []measure.Option {
	var opts []measure.Option
	if o.Scroll != nil {
		opts = append(opts, measure.WithScroll(*o.Scroll))
	}
	if o.OffsetSize != nil {
		opts = append(opts, measure.WithOffsetSize(*o.OffsetSize))
	}
	if o.Debounce != nil {
		opts = append(opts, measure.WithDebounce(*o.Debounce))
	}
	if o.ResizeDebounce != nil || o.ScrollDebounce != nil {
		opts = append(opts, func(mo *measure.Options) {
			if o.ResizeDebounce != nil {
				mo.ResizeDebounce = *o.ResizeDebounce
			}
			if o.ScrollDebounce != nil {
				mo.ScrollDebounce = *o.ScrollDebounce
			}
		})
	}
	if o.Transition != nil {
		opts = append(opts, measure.WithValueOptions(motion.WithTransition(motion.Tween(*o.Transition))))
	}
	return opts
}

// File returns the path the scenario was loaded from, if any.
func (s *Scenario) File() string { return s.file }

// LoadFile reads and validates a scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("M010").
			WithDetail("Cannot read scenario " + path).
			Wrap(err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a scenario. file is used in error locations
// and may be empty.
func Parse(data []byte, file string) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, decodeError(err, file)
	}
	sc.file = file

	if sc.Viewport.Width == 0 && sc.Viewport.Height == 0 {
		sc.Viewport = Size{Width: 1024, Height: 768}
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func decodeError(err error, file string) error {
	var se *stepError
	if stderrors.As(err, &se) {
		e := errors.New(se.code).WithDetail(se.msg)
		if file != "" {
			e = e.WithLocation(file, se.line, se.column)
		}
		return e
	}
	return errors.New("M010").
		WithDetail(err.Error()).
		WithSuggestion("Check the scenario against the example in `measure run --help`").
		Wrap(err)
}

// validate checks element ids and step references.
func (s *Scenario) validate() error {
	ids := make(map[string]bool)
	var walk func([]ElementSpec) error
	walk = func(specs []ElementSpec) error {
		for _, e := range specs {
			if e.ID != "" {
				if ids[e.ID] {
					return errors.New("M010").WithDetail(fmt.Sprintf("duplicate element id %q", e.ID))
				}
				ids[e.ID] = true
			}
			if err := walk(e.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(s.Elements); err != nil {
		return err
	}

	if s.Target == "" {
		return errors.New("M012").
			WithDetail("the scenario has no target").
			WithSuggestion("Set target to the id of the element to measure")
	}
	if !ids[s.Target] {
		return errors.New("M012").WithDetail(fmt.Sprintf("target %q is not declared", s.Target))
	}

	for _, st := range s.Steps {
		if st.ID == "" || ids[st.ID] {
			continue
		}
		e := errors.New("M012").WithDetail(fmt.Sprintf("step %s refers to unknown element %q", st.Action, st.ID))
		if s.file != "" {
			e = e.WithLocation(s.file, st.Line, st.Column)
		}
		return e
	}
	return nil
}
