package motion

import (
	"fmt"
	"strings"

	fease "github.com/fogleman/ease"
	"github.com/tanema/gween/ease"
)

// EasingFunc maps linear progress in [0, 1] to eased progress. Overshooting
// curves (elastic, back) may return values outside [0, 1].
type EasingFunc func(t float64) float64

// Linear is the identity easing and the default for every controller.
func Linear(t float64) float64 { return t }

// FromTweenFunc adapts a gween easing function, which works on
// (time, begin, change, duration), to a normalized EasingFunc.
func FromTweenFunc(fn ease.TweenFunc) EasingFunc {
	if fn == nil {
		return Linear
	}
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// easings is keyed by lowercase name.
var easings = map[string]EasingFunc{
	"linear":       fease.Linear,
	"inquad":       fease.InQuad,
	"outquad":      fease.OutQuad,
	"inoutquad":    fease.InOutQuad,
	"incubic":      fease.InCubic,
	"outcubic":     fease.OutCubic,
	"inoutcubic":   fease.InOutCubic,
	"inquart":      fease.InQuart,
	"outquart":     fease.OutQuart,
	"inoutquart":   fease.InOutQuart,
	"inquint":      fease.InQuint,
	"outquint":     fease.OutQuint,
	"inoutquint":   fease.InOutQuint,
	"insine":       fease.InSine,
	"outsine":      fease.OutSine,
	"inoutsine":    fease.InOutSine,
	"inexpo":       fease.InExpo,
	"outexpo":      fease.OutExpo,
	"inoutexpo":    fease.InOutExpo,
	"incirc":       fease.InCirc,
	"outcirc":      fease.OutCirc,
	"inoutcirc":    fease.InOutCirc,
	"inelastic":    fease.InElastic,
	"outelastic":   fease.OutElastic,
	"inoutelastic": fease.InOutElastic,
	"inback":       fease.InBack,
	"outback":      fease.OutBack,
	"inoutback":    fease.InOutBack,
	"inbounce":     fease.InBounce,
	"outbounce":    fease.OutBounce,
	"inoutbounce":  fease.InOutBounce,
}

// Easing looks up a named easing curve. Names are case-insensitive and may
// use dashes or underscores ("outCubic", "out-cubic", "OUT_CUBIC").
func Easing(name string) (EasingFunc, error) {
	key := easingKey(name)
	if key == "" {
		return Linear, nil
	}
	fn, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// RegisterEasing adds or replaces a named easing curve.
func RegisterEasing(name string, fn EasingFunc) {
	if fn == nil {
		panic("motion: cannot register nil easing")
	}
	easings[easingKey(name)] = fn
}

var easingKeyReplacer = strings.NewReplacer("-", "", "_", "", " ", "")

func easingKey(name string) string {
	return easingKeyReplacer.Replace(strings.ToLower(name))
}
