package scenario

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/measure/internal/errors"
	"github.com/vango-dev/measure/pkg/measure"
)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var merr *errors.MeasureError
	if !stderrors.As(err, &merr) {
		t.Fatalf("error %v is not a MeasureError", err)
	}
	return merr.Code
}

func TestLoadFile(t *testing.T) {
	sc, err := LoadFile(filepath.Join("testdata", "panel.yaml"))
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if sc.Name != "card in a scrolling panel" || sc.Target != "card" {
		t.Errorf("Name = %q, Target = %q", sc.Name, sc.Target)
	}
	if len(sc.Elements) != 1 || len(sc.Elements[0].Children) != 1 {
		t.Fatalf("unexpected element tree: %+v", sc.Elements)
	}
	if got := *sc.Options.Debounce; got != 50*time.Millisecond {
		t.Errorf("Options.Debounce = %v, want 50ms", got)
	}

	want := []Action{ActionMount, ActionFlush, ActionAdvance, ActionScroll, ActionAdvance, ActionAdvance, ActionResize, ActionRefresh}
	if len(sc.Steps) != len(want) {
		t.Fatalf("steps = %d, want %d", len(sc.Steps), len(want))
	}
	for i, a := range want {
		if sc.Steps[i].Action != a {
			t.Errorf("step %d = %s, want %s", i, sc.Steps[i].Action, a)
		}
	}
	scroll := sc.Steps[3]
	if scroll.ID != "panel" || scroll.Y != 40 || scroll.Line != 19 {
		t.Errorf("scroll step = %+v", scroll)
	}
}

func TestParseDefaults(t *testing.T) {
	sc, err := Parse([]byte("elements: [{id: a}]\ntarget: a\n"), "")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if sc.Viewport.Width != 1024 || sc.Viewport.Height != 768 {
		t.Errorf("Viewport = %+v, want 1024x768", sc.Viewport)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"invalid yaml", "steps: [", "M010"},
		{"unknown bare step", "elements: [{id: a}]\ntarget: a\nsteps:\n  - explode\n", "M011"},
		{"unknown mapping step", "elements: [{id: a}]\ntarget: a\nsteps:\n  - teleport: a\n", "M011"},
		{"two actions", "elements: [{id: a}]\ntarget: a\nsteps:\n  - {flush: true, mount: true}\n", "M011"},
		{"missing argument", "elements: [{id: a}]\ntarget: a\nsteps:\n  - advance\n", "M010"},
		{"bad duration", "elements: [{id: a}]\ntarget: a\nsteps:\n  - advance: soon\n", "M010"},
		{"missing id", "elements: [{id: a}]\ntarget: a\nsteps:\n  - resize: {width: 1}\n", "M010"},
		{"duplicate id", "elements: [{id: a}, {id: a}]\ntarget: a\n", "M010"},
		{"duplicate id under unnamed parents", "elements:\n  - children: [{id: a}]\n  - children: [{id: a}]\ntarget: a\n", "M010"},
		{"no target", "elements: [{id: a}]\n", "M012"},
		{"unknown target", "elements: [{id: a}]\ntarget: b\n", "M012"},
		{"unknown step id", "elements: [{id: a}]\ntarget: a\nsteps:\n  - remove: ghost\n", "M012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "")
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := codeOf(t, err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestParseNestedUnderUnnamedElement(t *testing.T) {
	src := `
elements:
  - overflow: scroll
    rect: {x: 0, y: 0, width: 400, height: 400}
    children:
      - id: card
        rect: {x: 10, y: 50, width: 100, height: 40}
target: card
steps:
  - mount
  - refresh
  - resize: {id: card, width: 120, height: 40}
  - refresh
`
	sc, err := Parse([]byte(src), "")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if sc.Target != "card" || len(sc.Steps) != 4 {
		t.Errorf("Target = %q, steps = %d", sc.Target, len(sc.Steps))
	}

	report, err := NewRunner(sc).Run(context.Background(), NewManualDriver())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got := report.Steps[1].Target.Width; got != 100 {
		t.Errorf("Steps[1].Target.Width = %v, want 100", got)
	}
	if got := report.Steps[3].Target.Width; got != 120 {
		t.Errorf("Steps[3].Target.Width = %v, want 120", got)
	}
}

func TestParseErrorLocation(t *testing.T) {
	src := "elements: [{id: a}]\ntarget: a\nsteps:\n  - mount\n  - teleport: a\n"
	_, err := Parse([]byte(src), "scene.yaml")
	var merr *errors.MeasureError
	if !stderrors.As(err, &merr) {
		t.Fatalf("error = %v", err)
	}
	if merr.Location == nil || merr.Location.File != "scene.yaml" || merr.Location.Line != 5 {
		t.Errorf("Location = %+v, want scene.yaml:5", merr.Location)
	}
}

func TestRunPanel(t *testing.T) {
	sc, err := LoadFile(filepath.Join("testdata", "panel.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	var steps []StepResult
	var changes []Change
	r := NewRunner(sc, WithHooks(Hooks{
		OnStep:   func(s StepResult) { steps = append(steps, s) },
		OnChange: func(c Change) { changes = append(changes, c) },
	}))
	report, err := r.Run(context.Background(), NewManualDriver())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(report.Steps) != len(sc.Steps) || len(steps) != len(sc.Steps) {
		t.Fatalf("reported %d steps, hooks saw %d, want %d", len(report.Steps), len(steps), len(sc.Steps))
	}

	// Initial observation, then the scroll window: first publish jumps.
	first := report.Steps[2]
	if first.Bounds.Y != 120 || first.Animating || first.Stats.Jumps != 1 {
		t.Errorf("after first window: %+v", first)
	}

	// The scroll publish animates towards y=80.
	scrolled := report.Steps[4]
	if scrolled.Target.Y != 80 || scrolled.Stats.Sets != 1 {
		t.Errorf("after scroll window: %+v", scrolled)
	}
	settled := report.Steps[5]
	if settled.Bounds.Y != 80 || settled.Animating {
		t.Errorf("after transition: %+v", settled)
	}

	// resize is debounced; refresh publishes it right away.
	if got := report.Steps[6].Target.Width; got != 200 {
		t.Errorf("Target.Width after resize = %v, want 200 until refresh", got)
	}
	if got := report.Final; got.Width != 200 {
		t.Errorf("Final.Width = %v, want 200 while animating", got.Width)
	}
	if got := report.Steps[7].Target.Width; got != 300 {
		t.Errorf("Target.Width after refresh = %v, want 300", got)
	}

	if report.Changes != len(changes) || report.Changes == 0 {
		t.Errorf("Changes = %d, hooks saw %d", report.Changes, len(changes))
	}
	if report.Stats.Jumps != 1 || report.Stats.Sets != 2 {
		t.Errorf("Stats = %+v, want 1 jump and 2 sets", report.Stats)
	}
}

func TestRunUnmounted(t *testing.T) {
	src := `
elements:
  - id: box
    rect: {x: 0, y: 0, width: 10, height: 10}
target: box
steps:
  - refresh
  - mount
  - refresh
  - resize: {id: box, width: 20, height: 10}
  - refresh
`
	sc, err := Parse([]byte(src), "")
	if err != nil {
		t.Fatal(err)
	}
	report, err := NewRunner(sc).Run(context.Background(), NewManualDriver())
	if err != nil {
		t.Fatal(err)
	}

	if s := report.Steps[0].Stats; s.Unmounted != 1 || report.Steps[0].Bounds.Width != 0 {
		t.Errorf("unmounted refresh: %+v", report.Steps[0])
	}
	if s := report.Steps[2].Stats; s.Unchanged != 1 {
		t.Errorf("refresh after mount should see the consumed baseline: %+v", s)
	}
	if got := report.Final.Width; got != 20 {
		t.Errorf("Final.Width = %v, want 20", got)
	}
}

func TestRunNoResizeObserver(t *testing.T) {
	sc, err := Parse([]byte("no_resize_observer: true\nelements: [{id: a}]\ntarget: a\n"), "")
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewRunner(sc).Run(context.Background(), NewManualDriver())
	if !stderrors.Is(err, measure.ErrNoResizeObserver) {
		t.Errorf("Run error = %v, want ErrNoResizeObserver", err)
	}
}

func TestRunBaseOptionsOverridden(t *testing.T) {
	src := `
options: {debounce: 0s}
elements:
  - id: a
    rect: {x: 0, y: 0, width: 5, height: 5}
target: a
steps:
  - mount
  - flush
`
	sc, err := Parse([]byte(src), "")
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(sc, WithMeasureOptions(measure.WithDebounce(time.Hour)))
	report, err := r.Run(context.Background(), NewManualDriver())
	if err != nil {
		t.Fatal(err)
	}
	if got := report.Final.Width; got != 5 {
		t.Errorf("Final.Width = %v, want 5: scenario debounce should win", got)
	}
}

func TestRunCancelled(t *testing.T) {
	sc, err := Parse([]byte("elements: [{id: a}]\ntarget: a\nsteps: [mount]\n"), "")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(sc).Run(ctx, NewManualDriver()); !stderrors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestStepString(t *testing.T) {
	s := Step{Action: ActionScroll, ID: "panel", Y: 40}
	if got := s.String(); !strings.Contains(got, "panel") || !strings.Contains(got, "40") {
		t.Errorf("String() = %q", got)
	}
}

func TestExampleScenariosRun(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no example scenarios")
	}
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			sc, err := LoadFile(file)
			if err != nil {
				t.Fatalf("LoadFile error: %v", err)
			}
			report, err := NewRunner(sc).Run(context.Background(), NewManualDriver())
			if err != nil {
				t.Fatalf("Run error: %v", err)
			}
			if len(report.Steps) != len(sc.Steps) {
				t.Errorf("ran %d steps, want %d", len(report.Steps), len(sc.Steps))
			}
		})
	}
}
