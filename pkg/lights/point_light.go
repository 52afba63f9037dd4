package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is an isotropic light source. Intensity is a radiant intensity
// color on the 0-255 scale and is not clamped.
type PointLight struct {
	ID        int
	Position  core.Point
	Intensity core.Color
}

// NewPointLight creates a new point light
func NewPointLight(id int, position core.Point, intensity core.Color) PointLight {
	return PointLight{ID: id, Position: position, Intensity: intensity}
}

// Illuminate returns the unit direction from point to the light and the
// distance between them
func (l PointLight) Illuminate(point core.Point) (direction core.Vec3, distance float64) {
	toLight := l.Position.Subtract(point)
	distance = toLight.Length()
	return toLight.Divide(distance), distance
}
