package motion

import (
	"sort"
	"strconv"
)

// State is a set of named numeric properties.
type State map[string]float64

// Clone returns a copy of s.
func (s State) Clone() State {
	c := make(State, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Keys returns the keys of s in sorted order.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MutateMode selects where a plain tween writes its results.
type MutateMode uint8

const (
	MutateInPlace  MutateMode = iota // write into the input State (default)
	MutateDetached                   // write into a private copy
)

// OverwriteMode selects the per-target mutual-exclusion policy.
type OverwriteMode uint8

const (
	OverwriteAuto OverwriteMode = iota // a new tween stops the one driving the same target (default)
	OverwriteOff                       // tweens on the same target run independently
)

// UpdateInfo accompanies every OnUpdate call.
type UpdateInfo struct {
	Tween  *Tween
	Linear float64
	Eased  float64
}

// TweenConfig holds the options of a Tween on top of Config.
type TweenConfig struct {
	Config

	// Key overrides the registry identity; otherwise the target is used.
	Key any
	// Units are appended per key by Tween.Formatted.
	Units     map[string]string
	Mutate    MutateMode
	Overwrite OverwriteMode

	// OnOverwrite fires on the new tween after it displaced prev.
	OnOverwrite func(prev *Tween)
	// OnUpdate receives the result state of plain (non-element) tweens after
	// every update.
	OnUpdate func(state State, info UpdateInfo)
}

// Tween interpolates the numeric properties of a target from an origin
// snapshot towards a desired state. Only keys present in both snapshots with
// a non-zero difference are ever written.
type Tween struct {
	*Controller

	to      State
	element *Element
	live    bool // re-read origin from element on every start

	origin  State
	changed State
	result  State

	key         any
	units       map[string]string
	overwrite   OverwriteMode
	onOverwrite func(prev *Tween)
	onUpdate    func(state State, info UpdateInfo)
}

// To tweens the State from towards to. Unless cfg.Mutate is MutateDetached,
// from itself receives the interpolated values. The registry key is from.
func To(from, to State, cfg TweenConfig) *Tween {
	var out State
	if cfg.Mutate == MutateInPlace {
		out = from
	}
	return newTween(from, from, nil, false, to, cfg, out)
}

// FromTo tweens target from the from state towards to. target is an
// *Element, a State receiving the results, or any comparable identity used
// only for overwrite protection (results are then read through OnUpdate).
func FromTo(target any, from, to State, cfg TweenConfig) *Tween {
	switch tg := target.(type) {
	case *Element:
		return newTween(tg, from, tg, false, to, cfg, nil)
	case State:
		var out State
		if cfg.Mutate == MutateInPlace {
			out = tg
		}
		return newTween(tg, from, nil, false, to, cfg, out)
	default:
		return newTween(target, from, nil, false, to, cfg, nil)
	}
}

// ElementTo tweens el from its live state towards to. The origin is re-read
// from the element on every Start, so a run picks up wherever a previous
// animation left the element.
func ElementTo(el *Element, to State, cfg TweenConfig) *Tween {
	return newTween(el, nil, el, true, to, cfg, nil)
}

// newTween builds a tween. out receives results in place; nil means a private
// copy (or, for elements, a sparse state handed to ApplyState).
func newTween(target any, from State, el *Element, live bool, to State, cfg TweenConfig, out State) *Tween {
	t := &Tween{
		to:          to,
		element:     el,
		live:        live,
		units:       cfg.Units,
		overwrite:   cfg.Overwrite,
		onOverwrite: cfg.OnOverwrite,
		onUpdate:    cfg.OnUpdate,
	}
	if cfg.Key != nil {
		t.key = targetKey(cfg.Key)
	} else {
		t.key = targetKey(target)
	}
	if t.key == nil && from != nil {
		t.key = targetKey(from)
	}

	t.Controller = newController(cfg.Config, t)
	t.startHook = t.beforeStart
	t.settleHook = t.release

	if live {
		t.origin = el.State(t.to.Keys()...)
	} else {
		t.origin = from.Clone()
	}
	switch {
	case el != nil:
		t.result = make(State, len(to))
	case out != nil:
		t.result = out
	default:
		t.result = t.origin.Clone()
	}
	t.updateChanges()

	t.init()
	return t
}

func (t *Tween) beforeStart(resuming bool) {
	t.claim()
	if t.live && !resuming && !t.element.IsDisposed() {
		t.origin = t.element.State(t.to.Keys()...)
		t.updateChanges()
	}
}

// updateChanges recomputes the sparse diff between origin and to.
func (t *Tween) updateChanges() {
	if t.changed == nil {
		t.changed = make(State, len(t.to))
	} else {
		clear(t.changed)
	}
	for k, want := range t.to {
		have, ok := t.origin[k]
		if !ok {
			continue
		}
		if d := want - have; d != 0 {
			t.changed[k] = d
		}
	}
	if t.element != nil {
		clear(t.result)
	}
}

// Apply writes origin + change*eased for every changed key.
func (t *Tween) Apply(eased, linear float64) {
	if t.element != nil && t.element.IsDisposed() {
		t.Stop()
		return
	}
	for k, d := range t.changed {
		t.result[k] = t.origin[k] + d*eased
	}
	if t.element != nil {
		t.element.ApplyState(t.result)
		return
	}
	if t.onUpdate != nil {
		t.onUpdate(t.result, UpdateInfo{Tween: t, Linear: linear, Eased: eased})
	}
}

// State returns the result state. It must not be mutated.
func (t *Tween) State() State { return t.result }

// Origin returns the origin snapshot of the current run.
func (t *Tween) Origin() State { return t.origin }

// Changes returns the non-zero deltas of the current run.
func (t *Tween) Changes() State { return t.changed }

// Element returns the element target, or nil for plain tweens.
func (t *Tween) Element() *Element { return t.element }

// Formatted renders the result state with Units appended per key.
func (t *Tween) Formatted() map[string]string {
	out := make(map[string]string, len(t.result))
	for k, v := range t.result {
		out[k] = strconv.FormatFloat(v, 'f', -1, 64) + t.units[k]
	}
	return out
}
