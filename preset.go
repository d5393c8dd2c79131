package motion

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Preset is a named, reusable set of timing options.
type Preset struct {
	Duration time.Duration `yaml:"duration"`
	Delay    time.Duration `yaml:"delay,omitempty"`
	Easing   string        `yaml:"easing,omitempty"`
	Reversed bool          `yaml:"reversed,omitempty"`

	easing EasingFunc
}

// Config returns a Config carrying the preset's timing. Callbacks and the
// scheduler are left for the caller to fill in.
func (p Preset) Config() Config {
	fn := p.easing
	if fn == nil {
		fn = Linear
	}
	return Config{
		Duration: p.Duration,
		Delay:    p.Delay,
		Easing:   fn,
		Reversed: p.Reversed,
	}
}

// Presets maps preset names to presets.
type Presets map[string]Preset

// LoadPresets parses a YAML (or JSON) mapping of preset names to presets:
//
//	fade:
//	  duration: 300ms
//	  easing: outCubic
//	slide:
//	  duration: 1s
//	  delay: 100ms
//	  easing: in-out-quad
func LoadPresets(data []byte) (Presets, error) {
	var ps Presets
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if len(ps) == 0 {
		return nil, fmt.Errorf("parse presets: no presets")
	}
	for name, p := range ps {
		if p.Duration < 0 || p.Delay < 0 {
			return nil, fmt.Errorf("preset %q: negative duration or delay", name)
		}
		fn, err := Easing(p.Easing)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		p.easing = fn
		ps[name] = p
	}
	return ps, nil
}

// Lookup returns the Config of the named preset.
func (ps Presets) Lookup(name string) (Config, bool) {
	p, ok := ps[name]
	if !ok {
		return Config{}, false
	}
	return p.Config(), true
}
