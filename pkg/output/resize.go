package output

import (
	"image"
	"math"

	"github.com/nfnt/resize"
)

// Scale resamples img by factor with a Lanczos filter. A factor of 1 or a
// non-positive factor returns img unchanged.
func Scale(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return img
	}

	bounds := img.Bounds()
	width := uint(max(1, math.Round(float64(bounds.Dx())*factor)))
	height := uint(max(1, math.Round(float64(bounds.Dy())*factor)))
	return resize.Resize(width, height, img, resize.Lanczos3)
}
