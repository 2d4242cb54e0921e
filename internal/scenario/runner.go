package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vango-dev/measure/pkg/dom/memdom"
	"github.com/vango-dev/measure/pkg/measure"
	"github.com/vango-dev/measure/pkg/motion"
)

// Change is one visible change of an output channel.
type Change struct {
	Field measure.Field `json:"field"`
	Value float64       `json:"value"`

	// At is the driver time since the run started.
	At time.Duration `json:"at"`
}

// StepResult is the state after one step.
type StepResult struct {
	Index  int           `json:"index"`
	Action Action        `json:"action"`
	Step   string        `json:"step"`
	At     time.Duration `json:"at"`

	// Bounds is the current output, interpolated mid-animation.
	Bounds measure.Rect `json:"bounds"`

	// Target is where in-flight animations are heading.
	Target    measure.Rect  `json:"target"`
	Animating bool          `json:"animating"`
	Mounted   bool          `json:"mounted"`
	Stats     measure.Stats `json:"stats"`
}

// Report summarizes a run.
type Report struct {
	Name    string        `json:"name"`
	Steps   []StepResult  `json:"steps"`
	Final   measure.Rect  `json:"final"`
	Stats   measure.Stats `json:"stats"`
	Changes int           `json:"changes"`
}

// Hooks observe a run as it happens. Both run on the driver's event loop.
type Hooks struct {
	OnStep   func(StepResult)
	OnChange func(Change)
}

// Runner replays a scenario.
type Runner struct {
	sc     *Scenario
	opts   []measure.Option
	logger *slog.Logger
	hooks  Hooks
	pace   time.Duration
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMeasureOptions sets base measure options. Scenario options are
// applied after them.
func WithMeasureOptions(opts ...measure.Option) RunnerOption {
	return func(r *Runner) {
		r.opts = append(r.opts, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithHooks sets the run observers.
func WithHooks(h Hooks) RunnerOption {
	return func(r *Runner) {
		r.hooks = h
	}
}

// WithPace waits d between steps.
func WithPace(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.pace = d
	}
}

// NewRunner creates a runner for sc.
func NewRunner(sc *Scenario, opts ...RunnerOption) *Runner {
	r := &Runner{sc: sc}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// run is the state of one replay. It is only touched on the event loop.
type run struct {
	doc      *memdom.Document
	m        *measure.Measure
	elements map[string]memdom.Node
	changes  int
}

// Run replays every step on d and returns the report. Setup errors, such
// as a missing ResizeObserver, are returned before any step runs.
func (r *Runner) Run(ctx context.Context, d Driver) (*Report, error) {
	start := d.Now()
	since := func() time.Duration { return d.Now().Sub(start) }

	var (
		st       *run
		setupErr error
	)
	if err := d.Do(ctx, func() { st, setupErr = r.setup(d, since) }); err != nil {
		return nil, err
	}
	if setupErr != nil {
		return nil, setupErr
	}

	report := &Report{Name: r.sc.Name}
	logger := r.logger.With("scenario", r.sc.Name)

	for i, step := range r.sc.Steps {
		if i > 0 && r.pace > 0 {
			if err := d.Wait(ctx, r.pace); err != nil {
				return report, err
			}
		}

		if step.Action == ActionAdvance {
			if err := d.Wait(ctx, step.Duration); err != nil {
				return report, err
			}
		} else if err := d.Do(ctx, func() { st.apply(step) }); err != nil {
			return report, err
		}

		var res StepResult
		if err := d.Do(ctx, func() { res = st.result(i, step, since()) }); err != nil {
			return report, err
		}
		report.Steps = append(report.Steps, res)
		logger.Debug("step", "index", i, "step", res.Step, "bounds", res.Bounds.String())
		if r.hooks.OnStep != nil {
			r.hooks.OnStep(res)
		}
	}

	err := d.Do(ctx, func() {
		report.Final = st.m.Bounds().Get()
		report.Stats = st.m.Stats()
		report.Changes = st.changes
		st.m.Dispose()
	})
	return report, err
}

func (r *Runner) setup(d Driver, since func() time.Duration) (*run, error) {
	var docOpts []memdom.Option
	if r.sc.Headless {
		docOpts = append(docOpts, memdom.Headless())
	}
	if r.sc.NoResizeObserver {
		docOpts = append(docOpts, memdom.WithoutResizeObserver())
	}
	docOpts = append(docOpts, memdom.WithViewport(r.sc.Viewport.Width, r.sc.Viewport.Height))

	st := &run{
		doc:      memdom.NewDocument(docOpts...),
		elements: make(map[string]memdom.Node),
	}
	for _, spec := range r.sc.Elements {
		child := st.build(spec)
		if !spec.Detached {
			st.doc.BodyElement().AppendChild(child)
		}
	}

	opts := append([]measure.Option{}, r.opts...)
	opts = append(opts, r.sc.Options.MeasureOptions()...)
	opts = append(opts,
		measure.WithScheduler(d),
		measure.WithLogger(r.logger),
	)
	m, err := measure.Use(st.doc, opts...)
	if err != nil {
		return nil, err
	}
	st.m = m

	for _, f := range measure.Fields {
		field := f
		m.Bounds().Value(field).OnChange(func(x float64) {
			st.changes++
			if r.hooks.OnChange != nil {
				r.hooks.OnChange(Change{Field: field, Value: x, At: since()})
			}
		})
	}

	m.Ref(st.elements[r.sc.Target])
	return st, nil
}

func (st *run) build(spec ElementSpec) memdom.Node {
	tag := spec.Tag
	var n memdom.Node
	if spec.SVG {
		if tag == "" {
			tag = "svg"
		}
		n = st.doc.CreateSVGElement(tag)
	} else {
		if tag == "" {
			tag = "div"
		}
		el := st.doc.CreateElement(tag)
		if spec.OffsetSize != nil {
			el.SetOffsetSize(spec.OffsetSize.Width, spec.OffsetSize.Height)
		}
		n = el
	}

	n.SetRect(spec.Rect.X, spec.Rect.Y, spec.Rect.Width, spec.Rect.Height)
	n.SetStyle(spec.style())
	if spec.ID != "" {
		st.elements[spec.ID] = n
	}
	for _, c := range spec.Children {
		n.AppendChild(st.build(c))
	}
	return n
}

func (st *run) apply(step Step) {
	el := st.elements[step.ID]
	switch step.Action {
	case ActionResize:
		r := el.Layout()
		el.SetRect(r.X, r.Y, step.Width, step.Height)
	case ActionMove:
		r := el.Layout()
		el.SetRect(step.X, step.Y, r.Width, r.Height)
	case ActionScroll:
		el.ScrollTo(step.X, step.Y)
	case ActionWindowResize:
		st.doc.Win().Resize(step.Width, step.Height)
	case ActionWindowScroll:
		st.doc.Win().ScrollTo(step.X, step.Y)
	case ActionFlush:
		st.doc.Flush()
	case ActionRefresh:
		st.m.ForceRefresh()
	case ActionRef:
		st.m.Ref(el)
	case ActionRemove:
		el.Remove()
	case ActionMount:
		st.m.Mount()
	case ActionUnmount:
		st.m.Unmount()
	default:
		panic(fmt.Sprintf("scenario: unhandled action %q", step.Action))
	}
}

func (st *run) result(i int, step Step, at time.Duration) StepResult {
	b := st.m.Bounds()
	animating := false
	b.Each(func(_ measure.Field, v *motion.Value) {
		animating = animating || v.IsAnimating()
	})
	return StepResult{
		Index:     i,
		Action:    step.Action,
		Step:      step.String(),
		At:        at,
		Bounds:    b.Get(),
		Target:    b.Target(),
		Animating: animating,
		Mounted:   st.m.Mounted(),
		Stats:     st.m.Stats(),
	}
}
