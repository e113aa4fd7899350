package colour

const (
	// DefaultSampleBudget is the approximate number of pixels drawn from a raster.
	DefaultSampleBudget = 12000

	// AlphaThreshold is the minimum alpha for a pixel to be sampled.
	// Mostly transparent padding would otherwise dominate the palette.
	AlphaThreshold = 125
)

// Pixel is an opaque colour vector.
type Pixel struct {
	R, G, B uint8
}

// RGB returns the pixel as an RGB value.
func (p Pixel) RGB() RGB {
	return RGB{R: p.R, G: p.G, B: p.B}
}

// SamplePixels walks the raster with a fixed stride of max(1, T/budget) over
// linear pixel indices and returns every visited pixel with alpha at or above
// AlphaThreshold. A budget of zero or less uses DefaultSampleBudget.
// The raster is assumed valid; see Raster.Validate.
func SamplePixels(r *Raster, budget int) []Pixel {
	if r == nil {
		return nil
	}
	total := r.Len()
	if total <= 0 || len(r.Pix) < total*4 {
		return nil
	}
	if budget <= 0 {
		budget = DefaultSampleBudget
	}

	step := max(1, total/budget)

	var pixels []Pixel
	for i := 0; i < total; i += step {
		off := i * 4
		if r.Pix[off+3] < AlphaThreshold {
			continue
		}
		pixels = append(pixels, Pixel{R: r.Pix[off], G: r.Pix[off+1], B: r.Pix[off+2]})
	}

	return pixels
}
