package sapling

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string `yaml:"action"`
	Key    string `yaml:"key,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

// InputScript replays key presses frame by frame through Input.Inject, for
// demos and automated runs. Scripts are YAML or JSON:
//
//	steps:
//	  - {action: wait, frames: 30}
//	  - {action: tap, key: space}
//	  - {action: press, key: right}
//	  - {action: wait, frames: 10}
//	  - {action: release, key: right}
//
// Attach one with WithInputScript.
type InputScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	tapped    []string
	done      bool
}

// LoadInputScript parses a script. Unknown actions and steps without a key
// are rejected.
func LoadInputScript(data []byte) (*InputScript, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "press", "release", "tap":
			if st.Key == "" {
				return nil, fmt.Errorf("parse input script: step %d: %s needs a key", i, st.Action)
			}
		case "wait":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &InputScript{steps: f.Steps}, nil
}

// Done reports whether every step has run.
func (s *InputScript) Done() bool {
	return s.done
}

// step runs the script for one frame. The engine calls it before polling
// input, so injected keys are visible in the same frame.
func (s *InputScript) step(in *Input) {
	for _, k := range s.tapped {
		in.Inject(k, false)
	}
	s.tapped = s.tapped[:0]

	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}

	// Key actions run back to back until a wait or the end.
	for s.cursor < len(s.steps) {
		st := s.steps[s.cursor]
		s.cursor++
		switch st.Action {
		case "press":
			in.Inject(st.Key, true)
		case "release":
			in.Inject(st.Key, false)
		case "tap":
			in.Inject(st.Key, true)
			s.tapped = append(s.tapped, st.Key)
		case "wait":
			if st.Frames > 1 {
				s.waitCount = st.Frames - 1 // this frame counts as one
			}
			return
		}
	}
	s.done = true
}
