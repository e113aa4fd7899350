package colour

import (
	"fmt"
	"math"
)

// CMYK holds integer ink percentages in the range 0-100.
type CMYK struct {
	C int `json:"c"`
	M int `json:"m"`
	Y int `json:"y"`
	K int `json:"k"`
}

// String returns the CMYK value as "cmyk(c%, m%, y%, k%)".
func (c CMYK) String() string {
	return fmt.Sprintf("cmyk(%d%%, %d%%, %d%%, %d%%)", c.C, c.M, c.Y, c.K)
}

// ToCMYK converts an RGB colour to CMYK percentages using the naive
// subtractive model. Pure black is (0, 0, 0, 100).
func ToCMYK(rgb RGB) CMYK {
	if rgb.R == 0 && rgb.G == 0 && rgb.B == 0 {
		return CMYK{K: 100}
	}

	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	k := 1 - math.Max(r, math.Max(g, b))
	c := (1 - r - k) / (1 - k)
	m := (1 - g - k) / (1 - k)
	y := (1 - b - k) / (1 - k)

	return CMYK{
		C: percent(c),
		M: percent(m),
		Y: percent(y),
		K: percent(k),
	}
}

// percent converts a fraction to a rounded percentage clamped to [0, 100].
func percent(v float64) int {
	return max(0, min(100, int(math.Round(v*100))))
}
