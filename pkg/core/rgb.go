package core

import (
	"fmt"
	"image/color"
)

// RGB is a fixed-range output color with components in [0, 255]
type RGB struct {
	R, G, B uint8
}

// NewRGB creates an RGB from integer components, clamping each to [0, 255]
func NewRGB(r, g, b int) RGB {
	return RGB{R: clampByte(r), G: clampByte(g), B: clampByte(b)}
}

// ToRGB clamps a real-valued color to [0, 255] and truncates each component
func ToRGB(c Color) RGB {
	c = c.Clamp(0, 255)
	return RGB{R: uint8(c.X), G: uint8(c.Y), B: uint8(c.Z)}
}

// Vec3 returns the color as real-valued components on the same [0, 255] scale
func (c RGB) Vec3() Color {
	return Vec3{float64(c.R), float64(c.G), float64(c.B)}
}

// Unit returns the color scaled to [0, 1]
func (c RGB) Unit() Color {
	return c.Vec3().Divide(255)
}

// RGBA implements color.Color
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

func (c RGB) String() string {
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

func clampByte(v int) uint8 {
	return uint8(max(0, min(255, v)))
}

// RGBSum accumulates RGB samples with integer components
type RGBSum struct {
	R, G, B int
}

// Add accumulates one sample
func (s *RGBSum) Add(c RGB) {
	s.R += int(c.R)
	s.G += int(c.G)
	s.B += int(c.B)
}

// Average returns the truncated integer mean of n samples
func (s RGBSum) Average(n int) RGB {
	if n <= 0 {
		return RGB{}
	}
	return NewRGB(s.R/n, s.G/n, s.B/n)
}
