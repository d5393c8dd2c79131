package motion

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Property keys understood by Element. Any other key is stored as a custom
// property and read back verbatim.
const (
	PropX        = "x"
	PropY        = "y"
	PropScaleX   = "scaleX"
	PropScaleY   = "scaleY"
	PropRotation = "rotation"
	PropSkewX    = "skewX"
	PropSkewY    = "skewY"
	PropPivotX   = "pivotX"
	PropPivotY   = "pivotY"
	PropAlpha    = "alpha"
)

// elementIDCounter is a plain counter; elements are created on the game goroutine.
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is a visual target with transform-like properties. Tweens write an
// Element through ApplyState, which sets every property in one pass and
// composes them into a single GeoM on demand.
type Element struct {
	ID   uint32
	Name string

	// Transform (local)
	X, Y         float64
	ScaleX       float64
	ScaleY       float64
	Rotation     float64
	SkewX, SkewY float64
	PivotX       float64
	PivotY       float64

	Alpha   float64
	Tint    colorful.Color
	Visible bool

	// Image is drawn by Draw; nil elements are skipped.
	Image *ebiten.Image
	// ZIndex orders drawing on a Stage; lower draws first.
	ZIndex int

	custom map[string]float64

	geom           ebiten.GeoM
	transformDirty bool
	disposed       bool
}

// NewElement creates a visible element with identity transform and white tint.
func NewElement(name string) *Element {
	return &Element{
		ID:             nextElementID(),
		Name:           name,
		ScaleX:         1,
		ScaleY:         1,
		Alpha:          1,
		Tint:           colorful.Color{R: 1, G: 1, B: 1},
		Visible:        true,
		transformDirty: true,
	}
}

// Get returns the value of a property key.
func (e *Element) Get(key string) (float64, bool) {
	switch key {
	case PropX:
		return e.X, true
	case PropY:
		return e.Y, true
	case PropScaleX:
		return e.ScaleX, true
	case PropScaleY:
		return e.ScaleY, true
	case PropRotation:
		return e.Rotation, true
	case PropSkewX:
		return e.SkewX, true
	case PropSkewY:
		return e.SkewY, true
	case PropPivotX:
		return e.PivotX, true
	case PropPivotY:
		return e.PivotY, true
	case PropAlpha:
		return e.Alpha, true
	}
	v, ok := e.custom[key]
	return v, ok
}

// Set writes one property. Transform keys mark the transform dirty; alpha
// and custom properties do not.
func (e *Element) Set(key string, v float64) {
	switch key {
	case PropX:
		e.X = v
	case PropY:
		e.Y = v
	case PropScaleX:
		e.ScaleX = v
	case PropScaleY:
		e.ScaleY = v
	case PropRotation:
		e.Rotation = v
	case PropSkewX:
		e.SkewX = v
	case PropSkewY:
		e.SkewY = v
	case PropPivotX:
		e.PivotX = v
	case PropPivotY:
		e.PivotY = v
	case PropAlpha:
		e.Alpha = v
		return
	default:
		if e.custom == nil {
			e.custom = make(map[string]float64)
		}
		e.custom[key] = v
		return
	}
	e.transformDirty = true
}

// State reads the live value of each key. Keys the element does not know
// are left out.
func (e *Element) State(keys ...string) State {
	s := make(State, len(keys))
	for _, k := range keys {
		if v, ok := e.Get(k); ok {
			s[k] = v
		}
	}
	return s
}

// ApplyState writes every key of s. It is the structured-property writer
// used by element tweens.
func (e *Element) ApplyState(s State) {
	if e.disposed {
		return
	}
	for k, v := range s {
		e.Set(k, v)
	}
}

// CustomKeys returns the custom property names in sorted order.
func (e *Element) CustomKeys() []string {
	keys := make([]string, 0, len(e.custom))
	for k := range e.custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- Transform property setters ---

// SetPosition sets the element's X and Y and marks it dirty.
func (e *Element) SetPosition(x, y float64) {
	e.X = x
	e.Y = y
	e.transformDirty = true
}

// SetScale sets the element's ScaleX and ScaleY and marks it dirty.
func (e *Element) SetScale(sx, sy float64) {
	e.ScaleX = sx
	e.ScaleY = sy
	e.transformDirty = true
}

// SetRotation sets the element's rotation (in radians) and marks it dirty.
func (e *Element) SetRotation(r float64) {
	e.Rotation = r
	e.transformDirty = true
}

// SetAlpha sets the element's alpha.
func (e *Element) SetAlpha(a float64) {
	e.Alpha = a
}

// MarkDirty forces the transform to be recomposed on the next GeoM call.
// Useful after bulk-setting fields directly.
func (e *Element) MarkDirty() {
	e.transformDirty = true
}

// GeoM returns the composed local transform.
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Skew -> Rotate -> Translate(X, Y)
func (e *Element) GeoM() ebiten.GeoM {
	if !e.transformDirty {
		return e.geom
	}
	var g ebiten.GeoM
	g.Translate(-e.PivotX, -e.PivotY)
	g.Scale(e.ScaleX, e.ScaleY)
	if e.SkewX != 0 || e.SkewY != 0 {
		g.Skew(e.SkewX, e.SkewY)
	}
	if e.Rotation != 0 {
		g.Rotate(e.Rotation)
	}
	g.Translate(e.X, e.Y)
	e.geom = g
	e.transformDirty = false
	return g
}

// ColorScale returns the premultiplied tint and alpha.
func (e *Element) ColorScale() ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := float32(clamp01(e.Alpha))
	cs.Scale(float32(e.Tint.R)*a, float32(e.Tint.G)*a, float32(e.Tint.B)*a, a)
	return cs
}

// Draw renders Image onto dst with the element's transform and tint.
func (e *Element) Draw(dst *ebiten.Image) {
	if e.disposed || !e.Visible || e.Image == nil || e.Alpha <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = e.GeoM()
	op.ColorScale = e.ColorScale()
	dst.DrawImage(e.Image, op)
}

// --- Disposal ---

// Dispose marks the element as disposed. Tweens driving it stop on their
// next frame and no further writes occur.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.ID = 0
	e.Image = nil
	e.custom = nil
}

// IsDisposed returns true if this element has been disposed.
func (e *Element) IsDisposed() bool {
	return e.disposed
}
