package motion

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in a frame script.
type scriptStep struct {
	Action   string  `yaml:"action"`
	Target   string  `yaml:"target,omitempty"`
	Progress float64 `yaml:"progress,omitempty"`
	Frames   int     `yaml:"frames,omitempty"`
}

// frameScript is the top-level structure of a script document.
type frameScript struct {
	Steps []scriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"start": true, "pause": true, "resume": true, "stop": true,
	"seek": true, "reverse": true, "reset": true, "wait": true,
}

// Script sequences controller actions across frames for deterministic
// playback and automated checks. Attach to a Stage via SetScript; one step
// runs per frame, before the frame queue is pumped.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML or JSON script:
//
//	steps:
//	  - {action: start, target: intro}
//	  - {action: wait, frames: 30}
//	  - {action: seek, target: intro, progress: 0.5}
func LoadScript(data []byte) (*Script, error) {
	var doc frameScript
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range doc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action != "wait" && st.Target == "" {
			return nil, fmt.Errorf("parse script: step %d: %s needs a target", i, st.Action)
		}
	}
	return &Script{steps: doc.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from Stage.Update.
func (r *Script) step(st *Stage) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	s := r.steps[r.cursor]
	r.cursor++

	if s.Action == "wait" {
		if s.Frames > 0 {
			r.waitCount = s.Frames - 1 // this frame counts as one
		}
	} else {
		p, ok := st.Lookup(s.Target)
		if !ok {
			r.done = true
			return fmt.Errorf("script step %d: no controller named %q", r.cursor-1, s.Target)
		}
		c := p.Base()
		switch s.Action {
		case "start":
			c.Start()
		case "pause":
			c.Pause()
		case "resume":
			c.Resume()
		case "stop":
			c.Stop()
		case "seek":
			c.Seek(s.Progress)
		case "reverse":
			c.Reverse()
		case "reset":
			c.Reset()
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}
