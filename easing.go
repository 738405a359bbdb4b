package cadence

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing selects the curve a transform follows between its endpoints.
type Easing uint8

const (
	EasingNone Easing = iota // linear
	EasingInQuad
	EasingOutQuad
	EasingInOutQuad
	EasingInCubic
	EasingOutCubic
	EasingInOutCubic
	EasingInQuart
	EasingOutQuart
	EasingInOutQuart
	EasingInQuint
	EasingOutQuint
	EasingInOutQuint
	EasingInSine
	EasingOutSine
	EasingInOutSine
	EasingInExpo
	EasingOutExpo
	EasingInOutExpo
	EasingInCirc
	EasingOutCirc
	EasingInOutCirc
	EasingInElastic
	EasingOutElastic
	EasingInOutElastic
	EasingInBack
	EasingOutBack
	EasingInOutBack
	EasingInBounce
	EasingOutBounce
	EasingInOutBounce

	easingCount
)

var easingFuncs = [easingCount]ease.TweenFunc{
	EasingNone:         ease.Linear,
	EasingInQuad:       ease.InQuad,
	EasingOutQuad:      ease.OutQuad,
	EasingInOutQuad:    ease.InOutQuad,
	EasingInCubic:      ease.InCubic,
	EasingOutCubic:     ease.OutCubic,
	EasingInOutCubic:   ease.InOutCubic,
	EasingInQuart:      ease.InQuart,
	EasingOutQuart:     ease.OutQuart,
	EasingInOutQuart:   ease.InOutQuart,
	EasingInQuint:      ease.InQuint,
	EasingOutQuint:     ease.OutQuint,
	EasingInOutQuint:   ease.InOutQuint,
	EasingInSine:       ease.InSine,
	EasingOutSine:      ease.OutSine,
	EasingInOutSine:    ease.InOutSine,
	EasingInExpo:       ease.InExpo,
	EasingOutExpo:      ease.OutExpo,
	EasingInOutExpo:    ease.InOutExpo,
	EasingInCirc:       ease.InCirc,
	EasingOutCirc:      ease.OutCirc,
	EasingInOutCirc:    ease.InOutCirc,
	EasingInElastic:    ease.InElastic,
	EasingOutElastic:   ease.OutElastic,
	EasingInOutElastic: ease.InOutElastic,
	EasingInBack:       ease.InBack,
	EasingOutBack:      ease.OutBack,
	EasingInOutBack:    ease.InOutBack,
	EasingInBounce:     ease.InBounce,
	EasingOutBounce:    ease.OutBounce,
	EasingInOutBounce:  ease.InOutBounce,
}

var easingNames = [easingCount]string{
	EasingNone:         "none",
	EasingInQuad:       "in_quad",
	EasingOutQuad:      "out_quad",
	EasingInOutQuad:    "in_out_quad",
	EasingInCubic:      "in_cubic",
	EasingOutCubic:     "out_cubic",
	EasingInOutCubic:   "in_out_cubic",
	EasingInQuart:      "in_quart",
	EasingOutQuart:     "out_quart",
	EasingInOutQuart:   "in_out_quart",
	EasingInQuint:      "in_quint",
	EasingOutQuint:     "out_quint",
	EasingInOutQuint:   "in_out_quint",
	EasingInSine:       "in_sine",
	EasingOutSine:      "out_sine",
	EasingInOutSine:    "in_out_sine",
	EasingInExpo:       "in_expo",
	EasingOutExpo:      "out_expo",
	EasingInOutExpo:    "in_out_expo",
	EasingInCirc:       "in_circ",
	EasingOutCirc:      "out_circ",
	EasingInOutCirc:    "in_out_circ",
	EasingInElastic:    "in_elastic",
	EasingOutElastic:   "out_elastic",
	EasingInOutElastic: "in_out_elastic",
	EasingInBack:       "in_back",
	EasingOutBack:      "out_back",
	EasingInOutBack:    "in_out_back",
	EasingInBounce:     "in_bounce",
	EasingOutBounce:    "out_bounce",
	EasingInOutBounce:  "in_out_bounce",
}

func (e Easing) String() string {
	if e >= easingCount {
		return fmt.Sprintf("Easing(%d)", uint8(e))
	}
	return easingNames[e]
}

// Apply maps linear progress p to eased progress. p is clamped to [0, 1]
// and the endpoints map exactly to 0 and 1. Unknown easings are linear.
func (e Easing) Apply(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	if e == EasingNone || e >= easingCount {
		return p
	}
	return float64(easingFuncs[e](float32(p), 0, 1, 1))
}

// ParseEasing resolves an easing by name. The empty string and "linear"
// both mean EasingNone. Names are case-insensitive and accept either
// underscores or dashes.
func ParseEasing(name string) (Easing, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	switch n {
	case "", "linear":
		return EasingNone, nil
	}
	for i, s := range easingNames {
		if s == n {
			return Easing(i), nil
		}
	}
	return EasingNone, fmt.Errorf("unknown easing %q", name)
}
