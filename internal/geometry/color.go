package geometry

import (
	"fmt"
	"math"
)

const (
	HueBase  = 200.0
	HueScale = 120.0
)

// WrapHue folds any angle in degrees into [0, 360).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HeightHue maps a sampled height linearly onto the color wheel.
func HeightHue(z float64) float64 {
	return WrapHue(HueBase + HueScale*z)
}

// HSL formats an hsl() color string with saturation and lightness in [0, 1].
func HSL(h, s, l float64) string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", int(WrapHue(math.Round(h))), int(math.Round(s*100)), int(math.Round(l*100)))
}

func HeightColor(z float64) string {
	return HSL(HeightHue(z), 0.7, 0.5)
}
