package motion

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lucasb-eyer/go-colorful"
)

func TestNewElementDefaults(t *testing.T) {
	el := NewElement("box")
	if el.ScaleX != 1 || el.ScaleY != 1 || el.Alpha != 1 || !el.Visible {
		t.Errorf("unexpected defaults: %+v", el)
	}
	if el.Tint != (colorful.Color{R: 1, G: 1, B: 1}) {
		t.Errorf("Tint = %v, want white", el.Tint)
	}
	if el.ID == 0 {
		t.Error("ID should be assigned")
	}
	if other := NewElement("other"); other.ID == el.ID {
		t.Error("IDs should be unique")
	}
}

func TestElementGetSet(t *testing.T) {
	el := NewElement("box")
	keys := []string{
		PropX, PropY, PropScaleX, PropScaleY, PropRotation,
		PropSkewX, PropSkewY, PropPivotX, PropPivotY, PropAlpha, "glow",
	}
	for i, k := range keys {
		el.Set(k, float64(i)+0.5)
	}
	for i, k := range keys {
		v, ok := el.Get(k)
		if !ok || v != float64(i)+0.5 {
			t.Errorf("Get(%q) = %v, %v, want %v", k, v, ok, float64(i)+0.5)
		}
	}
	if _, ok := el.Get("missing"); ok {
		t.Error("unknown key should report false")
	}
	if diff := cmp.Diff([]string{"glow"}, el.CustomKeys()); diff != "" {
		t.Errorf("CustomKeys mismatch (-want +got):\n%s", diff)
	}
}

func TestElementStateSkipsUnknown(t *testing.T) {
	el := NewElement("box")
	el.SetPosition(3, 4)
	got := el.State(PropX, PropY, "missing")
	if diff := cmp.Diff(State{PropX: 3, PropY: 4}, got); diff != "" {
		t.Errorf("State mismatch (-want +got):\n%s", diff)
	}
}

func TestElementApplyState(t *testing.T) {
	el := NewElement("box")
	el.ApplyState(State{PropX: 10, PropAlpha: 0.5})
	if el.X != 10 || el.Alpha != 0.5 {
		t.Errorf("X = %v, Alpha = %v", el.X, el.Alpha)
	}

	el.Dispose()
	el.ApplyState(State{PropX: 99})
	if el.X != 10 {
		t.Error("disposed element should ignore writes")
	}
}

func TestElementGeoM(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(el *Element)
		px, py float64
		wx, wy float64
	}{
		{"identity", func(el *Element) {}, 1, 2, 1, 2},
		{"translate", func(el *Element) { el.SetPosition(10, 20) }, 0, 0, 10, 20},
		{"scale", func(el *Element) { el.SetScale(2, 3) }, 1, 1, 2, 3},
		{"rotate", func(el *Element) { el.SetRotation(math.Pi / 2) }, 1, 0, 0, 1},
		{"pivot", func(el *Element) {
			el.PivotX, el.PivotY = 5, 5
			el.SetScale(2, 2)
		}, 5, 5, 0, 0},
		{"combined", func(el *Element) {
			el.SetScale(2, 2)
			el.SetRotation(math.Pi / 2)
			el.SetPosition(100, 0)
		}, 1, 0, 100, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := NewElement(tt.name)
			tt.setup(el)
			el.MarkDirty()
			g := el.GeoM()
			x, y := g.Apply(tt.px, tt.py)
			if math.Abs(x-tt.wx) > 1e-9 || math.Abs(y-tt.wy) > 1e-9 {
				t.Errorf("Apply(%v, %v) = (%v, %v), want (%v, %v)", tt.px, tt.py, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestElementGeoMCached(t *testing.T) {
	el := NewElement("box")
	el.SetPosition(10, 0)
	el.GeoM()

	// Writing the field directly leaves the cached matrix in place.
	el.X = 50
	if x, _ := el.GeoM().Apply(0, 0); x != 10 {
		t.Errorf("cached x = %v, want 10", x)
	}
	el.MarkDirty()
	if x, _ := el.GeoM().Apply(0, 0); x != 50 {
		t.Errorf("x after MarkDirty = %v, want 50", x)
	}

	// Set marks dirty on its own.
	el.Set(PropX, 70)
	if x, _ := el.GeoM().Apply(0, 0); x != 70 {
		t.Errorf("x after Set = %v, want 70", x)
	}
}

func TestElementColorScale(t *testing.T) {
	el := NewElement("box")
	el.Tint = colorful.Color{R: 1, G: 0.5, B: 0}
	el.SetAlpha(0.5)

	cs := el.ColorScale()
	if cs.R() != 0.5 || cs.G() != 0.25 || cs.B() != 0 || cs.A() != 0.5 {
		t.Errorf("ColorScale = (%v, %v, %v, %v), want premultiplied (0.5, 0.25, 0, 0.5)",
			cs.R(), cs.G(), cs.B(), cs.A())
	}

	el.SetAlpha(2)
	if cs := el.ColorScale(); cs.A() != 1 {
		t.Errorf("alpha should clamp to 1, got %v", cs.A())
	}
}

func TestElementDispose(t *testing.T) {
	el := NewElement("box")
	el.Set("glow", 1)
	el.Dispose()
	el.Dispose()
	if !el.IsDisposed() {
		t.Fatal("IsDisposed should be true")
	}
	if el.ID != 0 {
		t.Errorf("ID = %d, want 0 after dispose", el.ID)
	}
	if len(el.CustomKeys()) != 0 {
		t.Error("custom properties should be dropped")
	}
}

func TestElementSetMarksOnlyTransformDirty(t *testing.T) {
	tests := []struct {
		key   string
		dirty bool
	}{
		{PropX, true},
		{PropRotation, true},
		{PropPivotY, true},
		{PropAlpha, false},
		{"glow", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			el := NewElement("box")
			el.GeoM()
			el.Set(tt.key, 0.5)
			if el.transformDirty != tt.dirty {
				t.Errorf("transformDirty = %v after Set(%q), want %v", el.transformDirty, tt.key, tt.dirty)
			}
			if v, _ := el.Get(tt.key); v != 0.5 {
				t.Errorf("Get(%q) = %v, want 0.5", tt.key, v)
			}
		})
	}
}
