package cadence

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// storyboardStep is one entry in a storyboard document.
type storyboardStep struct {
	Op       string    `yaml:"op"`
	X        float64   `yaml:"x,omitempty"`
	Y        float64   `yaml:"y,omitempty"`
	Width    float64   `yaml:"width,omitempty"`
	Height   float64   `yaml:"height,omitempty"`
	Alpha    float64   `yaml:"alpha,omitempty"`
	Rotation float64   `yaml:"rotation,omitempty"`
	Color    colorSpec `yaml:"color,omitempty"`
	Duration float64   `yaml:"duration,omitempty"`
	Easing   string    `yaml:"easing,omitempty"`

	easing Easing
}

type colorSpec struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// storyboardDoc is the top-level YAML structure.
type storyboardDoc struct {
	Name  string           `yaml:"name"`
	Steps []storyboardStep `yaml:"steps"`
}

// Storyboard is a parsed, validated list of transform steps that can be
// replayed onto any drawable.
//
//	name: intro
//	steps:
//	  - {op: move, x: 100, y: 40, duration: 500, easing: out_quad}
//	  - {op: fade, alpha: 1, duration: 500}
//	  - {op: then}
//	  - {op: flash, color: {r: 1, g: 0, b: 0, a: 1}, duration: 200}
//
// Consecutive steps start together; then, wait and delay move the start
// time for the steps after them.
type Storyboard struct {
	Name  string
	steps []storyboardStep
}

// LoadStoryboard parses and validates a YAML storyboard.
func LoadStoryboard(data []byte) (*Storyboard, error) {
	var doc storyboardDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse storyboard: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("parse storyboard: no steps")
	}
	for i := range doc.Steps {
		st := &doc.Steps[i]
		if _, ok := storyboardOps[st.Op]; !ok {
			return nil, fmt.Errorf("parse storyboard: step %d: unknown op %q", i, st.Op)
		}
		if st.Duration < 0 {
			return nil, fmt.Errorf("parse storyboard: step %d: negative duration %g", i, st.Duration)
		}
		e, err := ParseEasing(st.Easing)
		if err != nil {
			return nil, fmt.Errorf("parse storyboard: step %d: %w", i, err)
		}
		st.easing = e
	}
	return &Storyboard{Name: doc.Name, steps: doc.Steps}, nil
}

// LoadStoryboardFile reads and parses the storyboard at path.
func LoadStoryboardFile(path string) (*Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load storyboard %s: %w", path, err)
	}
	sb, err := LoadStoryboard(data)
	if err != nil {
		return nil, fmt.Errorf("load storyboard %s: %w", path, err)
	}
	return sb, nil
}

// Len returns the number of steps.
func (sb *Storyboard) Len() int {
	return len(sb.steps)
}

// Apply schedules every step on d starting at d's chain cursor and returns
// the sequence after the last step.
func (sb *Storyboard) Apply(d *Drawable) *Sequence {
	seq := d.Delay(0)
	for _, st := range sb.steps {
		seq = storyboardOps[st.Op](seq, st)
	}
	return seq
}

var storyboardOps = map[string]func(*Sequence, storyboardStep) *Sequence{
	"move": func(s *Sequence, st storyboardStep) *Sequence {
		return s.MoveTo(Vec2{st.X, st.Y}, st.Duration, st.easing)
	},
	"move_x": func(s *Sequence, st storyboardStep) *Sequence {
		return s.MoveToX(st.X, st.Duration, st.easing)
	},
	"move_y": func(s *Sequence, st storyboardStep) *Sequence {
		return s.MoveToY(st.Y, st.Duration, st.easing)
	},
	"offset": func(s *Sequence, st storyboardStep) *Sequence {
		return s.MoveToOffset(Vec2{st.X, st.Y}, st.Duration, st.easing)
	},
	"resize": func(s *Sequence, st storyboardStep) *Sequence {
		return s.ResizeTo(Vec2{st.Width, st.Height}, st.Duration, st.easing)
	},
	"scale": func(s *Sequence, st storyboardStep) *Sequence {
		return s.ScaleTo(Vec2{st.X, st.Y}, st.Duration, st.easing)
	},
	"rotate": func(s *Sequence, st storyboardStep) *Sequence {
		return s.RotateTo(st.Rotation, st.Duration, st.easing)
	},
	"fade": func(s *Sequence, st storyboardStep) *Sequence {
		return s.FadeTo(st.Alpha, st.Duration, st.easing)
	},
	"color": func(s *Sequence, st storyboardStep) *Sequence {
		return s.FadeColor(Color(st.Color), st.Duration, st.easing)
	},
	"flash": func(s *Sequence, st storyboardStep) *Sequence {
		return s.FlashColor(Color(st.Color), st.Duration, st.easing)
	},
	"wait": func(s *Sequence, st storyboardStep) *Sequence {
		return s.Wait(st.Duration)
	},
	"then": func(s *Sequence, _ storyboardStep) *Sequence {
		return s.Then()
	},
	"delay": func(s *Sequence, st storyboardStep) *Sequence {
		return s.Delay(st.Duration)
	},
}
