package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Framebuffer is a row-major pixel buffer, top row first.
// It implements image.Image.
type Framebuffer struct {
	Width, Height int
	Pixels        []core.RGB
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.RGB, width*height),
	}
}

// Pixel returns the color at column x of row y
func (fb *Framebuffer) Pixel(x, y int) core.RGB {
	return fb.Pixels[y*fb.Width+x]
}

// Set stores the color at column x of row y
func (fb *Framebuffer) Set(x, y int, c core.RGB) {
	fb.Pixels[y*fb.Width+x] = c
}

// Rows returns the sub-slice holding rows [start, end). Disjoint row ranges
// share no memory, so each worker can write its own range without locking.
func (fb *Framebuffer) Rows(start, end int) []core.RGB {
	return fb.Pixels[start*fb.Width : end*fb.Width]
}

// ColorModel implements image.Image
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image
func (fb *Framebuffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(fb.Bounds())) {
		return color.RGBA{}
	}
	return fb.Pixel(x, y)
}

// ToRGBA copies the framebuffer into an *image.RGBA
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.Pixel(x, y)
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}
