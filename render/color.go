package render

import (
	"fmt"
	"math"
)

// Reputation color ramp anchors, red -> yellow -> green. The two halves use
// different fixed/varying channel sets and meet exactly at the midpoint so
// the ramp has no visible seam at 50.
//
//	  0: rgb(239,  68,  68)
//	 50: rgb(239, 198,  68)
//	100: rgb( 16, 185, 129)

// ReputationColor maps a score to its fill color. Out-of-range inputs are
// clamped to [0,100] before mapping.
func ReputationColor(rep float64) string {
	rep = math.Max(0, math.Min(100, rep))
	var r, g, b int
	if rep < 50 {
		r, g, b = lowRamp(rep)
	} else {
		r, g, b = highRamp(rep)
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// lowRamp interpolates the red->yellow half: red and blue channels fixed,
// green rising linearly.
func lowRamp(rep float64) (r, g, b int) {
	t := rep / 50
	return 239, 68 + int(math.Round(130*t)), 68
}

// highRamp interpolates the yellow->green half: all three channels move
// linearly toward the 100-endpoint.
func highRamp(rep float64) (r, g, b int) {
	t := (rep - 50) / 50
	return 239 - int(math.Round(223*t)),
		198 - int(math.Round(13*t)),
		68 + int(math.Round(61*t))
}
