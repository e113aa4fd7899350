// Package colour provides dominant colour extraction and palette formatting.
package colour

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// ErrInvalidRaster is returned when a raster cannot be sampled.
var ErrInvalidRaster = errors.New("invalid raster")

// Raster is a decoded image buffer holding straight (non-premultiplied)
// RGBA bytes, four per pixel, in row-major order.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRaster converts an image into a Raster.
// Images that are already *image.NRGBA with a tight stride are used without copying.
func NewRaster(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image cannot be nil", ErrInvalidRaster)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels (%dx%d)", ErrInvalidRaster, width, height)
	}

	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Stride == width*4 {
		start := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y)
		return &Raster{
			Width:  width,
			Height: height,
			Pix:    nrgba.Pix[start : start+width*height*4],
		}, nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)

	return &Raster{Width: width, Height: height, Pix: dst.Pix}, nil
}

// Validate reports whether the raster dimensions agree with its buffer.
func (r *Raster) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: raster is nil", ErrInvalidRaster)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidRaster, r.Width, r.Height)
	}
	if want := r.Width * r.Height * 4; len(r.Pix) != want {
		return fmt.Errorf("%w: buffer holds %d bytes, want %d for %dx%d", ErrInvalidRaster, len(r.Pix), want, r.Width, r.Height)
	}
	return nil
}

// Len returns the number of pixel positions in the raster.
func (r *Raster) Len() int {
	return r.Width * r.Height
}

// Image returns an *image.NRGBA view sharing the raster's buffer.
func (r *Raster) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: r.Width * 4,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}
