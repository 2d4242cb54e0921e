package scenario

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Action is a scenario step kind.
type Action string

const (
	ActionResize       Action = "resize"
	ActionMove         Action = "move"
	ActionScroll       Action = "scroll"
	ActionWindowResize Action = "window-resize"
	ActionWindowScroll Action = "window-scroll"
	ActionAdvance      Action = "advance"
	ActionFlush        Action = "flush"
	ActionRefresh      Action = "refresh"
	ActionRef          Action = "ref"
	ActionRemove       Action = "remove"
	ActionMount        Action = "mount"
	ActionUnmount      Action = "unmount"
)

// bare actions take no argument and may be written as a plain string.
var bare = map[Action]bool{
	ActionFlush:   true,
	ActionRefresh: true,
	ActionMount:   true,
	ActionUnmount: true,
}

// Step is one scenario action.
type Step struct {
	Action Action

	// ID is the element the step applies to.
	ID string

	// X and Y are the position for move, the scroll offset (left, top)
	// for scroll and window-scroll.
	X, Y float64

	// Width and Height are the size for resize and window-resize.
	Width, Height float64

	// Duration is the time that passes for advance.
	Duration time.Duration

	// Line and Column locate the step in the scenario file.
	Line, Column int
}

// String describes the step.
func (s Step) String() string {
	switch s.Action {
	case ActionResize:
		return fmt.Sprintf("resize %s to %gx%g", s.ID, s.Width, s.Height)
	case ActionMove:
		return fmt.Sprintf("move %s to (%g, %g)", s.ID, s.X, s.Y)
	case ActionScroll:
		return fmt.Sprintf("scroll %s to (%g, %g)", s.ID, s.X, s.Y)
	case ActionWindowResize:
		return fmt.Sprintf("window-resize to %gx%g", s.Width, s.Height)
	case ActionWindowScroll:
		return fmt.Sprintf("window-scroll to (%g, %g)", s.X, s.Y)
	case ActionAdvance:
		return "advance " + s.Duration.String()
	case ActionRef, ActionRemove:
		return string(s.Action) + " " + s.ID
	}
	return string(s.Action)
}

// stepError is a step decoding failure with its position.
type stepError struct {
	code         string
	msg          string
	line, column int
}

func (e *stepError) Error() string {
	return fmt.Sprintf("line %d: %s", e.line, e.msg)
}

func unknownStep(n *yaml.Node, msg string) error {
	return &stepError{code: "M011", msg: msg, line: n.Line, column: n.Column}
}

func badStep(n *yaml.Node, msg string) error {
	return &stepError{code: "M010", msg: msg, line: n.Line, column: n.Column}
}

// UnmarshalYAML decodes either a bare action ("- flush") or a single-key
// mapping ("- advance: 50ms").
func (s *Step) UnmarshalYAML(n *yaml.Node) error {
	*s = Step{Line: n.Line, Column: n.Column}

	switch n.Kind {
	case yaml.ScalarNode:
		s.Action = Action(n.Value)
		if !bare[s.Action] {
			if _, known := decoders[s.Action]; known {
				return badStep(n, fmt.Sprintf("step %q needs an argument", n.Value))
			}
			return unknownStep(n, fmt.Sprintf("unknown step %q", n.Value))
		}
		return nil

	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return unknownStep(n, fmt.Sprintf("a step must have exactly one action, got %d", len(n.Content)/2))
		}
		key, value := n.Content[0], n.Content[1]
		s.Action = Action(key.Value)
		if bare[s.Action] {
			return nil
		}
		decode, ok := decoders[s.Action]
		if !ok {
			return unknownStep(key, fmt.Sprintf("unknown step %q", key.Value))
		}
		if err := decode(s, value); err != nil {
			return badStep(value, fmt.Sprintf("step %s: %v", s.Action, err))
		}
		return nil
	}
	return unknownStep(n, "a step must be a string or a single-key mapping")
}

type target struct {
	ID     string  `yaml:"id"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func decodeTarget(n *yaml.Node, needID bool) (target, error) {
	var t target
	if err := n.Decode(&t); err != nil {
		return t, err
	}
	if needID && t.ID == "" {
		return t, fmt.Errorf("missing id")
	}
	return t, nil
}

var decoders = map[Action]func(*Step, *yaml.Node) error{
	ActionResize: func(s *Step, n *yaml.Node) error {
		t, err := decodeTarget(n, true)
		s.ID, s.Width, s.Height = t.ID, t.Width, t.Height
		return err
	},
	ActionMove: func(s *Step, n *yaml.Node) error {
		t, err := decodeTarget(n, true)
		s.ID, s.X, s.Y = t.ID, t.X, t.Y
		return err
	},
	ActionScroll: func(s *Step, n *yaml.Node) error {
		t, err := decodeTarget(n, true)
		s.ID, s.X, s.Y = t.ID, t.Left, t.Top
		return err
	},
	ActionWindowResize: func(s *Step, n *yaml.Node) error {
		t, err := decodeTarget(n, false)
		s.Width, s.Height = t.Width, t.Height
		return err
	},
	ActionWindowScroll: func(s *Step, n *yaml.Node) error {
		t, err := decodeTarget(n, false)
		s.X, s.Y = t.X, t.Y
		return err
	},
	ActionAdvance: func(s *Step, n *yaml.Node) error {
		if err := n.Decode(&s.Duration); err != nil {
			return err
		}
		if s.Duration < 0 {
			return fmt.Errorf("negative duration %s", s.Duration)
		}
		return nil
	},
	ActionRef:    decodeID,
	ActionRemove: decodeID,
}

func decodeID(s *Step, n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode || n.Value == "" {
		return fmt.Errorf("want an element id")
	}
	s.ID = n.Value
	return nil
}
