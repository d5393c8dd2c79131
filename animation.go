package motion

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Group animates up to 4 float64 fields with gween tweens. The embedded
// controller owns timing; the gween tweens only shape the values, so a Group
// can be paused, reversed or placed on a Timeline like any controller. If the
// target element is disposed, the group stops immediately.
type Group struct {
	*Controller
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Element
	fn     ease.TweenFunc
	span   float32
}

// NewGroup creates an empty group. fn shapes every field; cfg.Easing,
// cfg.AutoStart and cfg.InitSeek are ignored, call Start once the fields are
// added. target may be nil for fields that do not belong to an element.
func NewGroup(target *Element, fn ease.TweenFunc, cfg Config) *Group {
	if fn == nil {
		fn = ease.Linear
	}
	g := &Group{target: target, fn: fn}
	g.span = float32(cfg.Duration.Seconds())
	if g.span <= 0 {
		g.span = 1
	}
	cfg.Easing = Linear
	cfg.AutoStart = false
	cfg.InitSeek = 0
	g.Controller = newController(cfg, g)
	return g
}

// Field adds a field animated from its current value to to. Panics past 4
// fields.
func (g *Group) Field(field *float64, to float64) *Group {
	if g.count == len(g.fields) {
		panic("motion: group supports at most 4 fields")
	}
	g.tweens[g.count] = gween.New(float32(*field), float32(to), g.span, g.fn)
	g.fields[g.count] = field
	g.count++
	return g
}

// Apply seeks every gween tween and writes the values to the fields.
func (g *Group) Apply(_, linear float64) {
	if g.target != nil && g.target.IsDisposed() {
		g.Stop()
		return
	}
	t := float32(linear) * g.span
	for i := 0; i < g.count; i++ {
		val, _ := g.tweens[i].Set(t)
		*g.fields[i] = float64(val)
	}
	if g.target != nil {
		g.target.MarkDirty()
	}
}

func presetConfig(s *Scheduler, d time.Duration, fn ease.TweenFunc) TweenConfig {
	return TweenConfig{Config: Config{
		Duration:  d,
		Easing:    FromTweenFunc(fn),
		Scheduler: s,
	}}
}

// TweenPosition starts a tween moving el to (x, y) over d on scheduler s
// (nil means Default).
func TweenPosition(s *Scheduler, el *Element, x, y float64, d time.Duration, fn ease.TweenFunc) *Tween {
	t := ElementTo(el, State{PropX: x, PropY: y}, presetConfig(s, d, fn))
	t.Start()
	return t
}

// TweenScale starts a tween scaling el to (sx, sy) over d.
func TweenScale(s *Scheduler, el *Element, sx, sy float64, d time.Duration, fn ease.TweenFunc) *Tween {
	t := ElementTo(el, State{PropScaleX: sx, PropScaleY: sy}, presetConfig(s, d, fn))
	t.Start()
	return t
}

// TweenAlpha starts a tween fading el to alpha over d.
func TweenAlpha(s *Scheduler, el *Element, alpha float64, d time.Duration, fn ease.TweenFunc) *Tween {
	t := ElementTo(el, State{PropAlpha: alpha}, presetConfig(s, d, fn))
	t.Start()
	return t
}

// TweenRotation starts a tween rotating el to r radians over d.
func TweenRotation(s *Scheduler, el *Element, r float64, d time.Duration, fn ease.TweenFunc) *Tween {
	t := ElementTo(el, State{PropRotation: r}, presetConfig(s, d, fn))
	t.Start()
	return t
}

// colorSink blends an element tint in CIE L*a*b*, which keeps perceived
// brightness even along the way.
type colorSink struct {
	el       *Element
	from, to colorful.Color
}

func (cs *colorSink) Apply(eased, _ float64) {
	if cs.el.IsDisposed() {
		return
	}
	cs.el.Tint = cs.from.BlendLab(cs.to, eased).Clamped()
}

// TweenColor creates a controller blending el.Tint towards to. The start
// color is read from the element on every Start.
func TweenColor(el *Element, to colorful.Color, cfg Config) *Controller {
	cs := &colorSink{el: el, from: el.Tint, to: to}
	c := newController(cfg, cs)
	c.startHook = func(resuming bool) {
		if !resuming {
			cs.from = el.Tint
		}
	}
	c.init()
	return c
}
