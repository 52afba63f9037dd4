package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// ShadowEpsilon offsets shadow rays off the surface they start on
	ShadowEpsilon = 1e-4
	// ReflectionEpsilon offsets mirror rays along the reflected direction
	ReflectionEpsilon = 1e-4
)

// Raytracer evaluates the recursive Whitted lighting model against a scene.
// It holds no mutable state and is safe for concurrent use.
type Raytracer struct {
	scene *scene.Scene
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene) *Raytracer {
	return &Raytracer{scene: s}
}

// hitWorld returns the closest hit over every shape, in insertion order.
// On exact ties the first shape wins.
func (rt *Raytracer) hitWorld(ray core.Ray) geometry.Hit {
	closest := geometry.NoHit()
	for _, shape := range rt.scene.Shapes {
		if hit := shape.Intersect(ray); hit.Closer(closest) {
			closest = hit
		}
	}
	return closest
}

// occluded reports whether anything lies between point and a light at the
// given distance along direction
func (rt *Raytracer) occluded(point core.Point, direction core.Vec3, distance float64) bool {
	shadowRay := core.Ray{Origin: point.Add(direction.Multiply(ShadowEpsilon)), Direction: direction}
	limit := distance - ShadowEpsilon
	for _, shape := range rt.scene.Shapes {
		if hit := shape.Intersect(shadowRay); hit.IsHit() && hit.T < limit {
			return true
		}
	}
	return false
}

// Trace returns the color seen along ray. depth is 0 for primary rays.
// Contributions of all lights are summed first and clamped once.
func (rt *Raytracer) Trace(ray core.Ray, depth int) core.RGB {
	hit := rt.hitWorld(ray)
	if !hit.IsHit() {
		return rt.scene.BackgroundColor
	}

	var total core.Color
	for _, light := range rt.scene.Lights {
		total = total.Add(rt.Shade(ray, hit, light, depth))
	}
	return core.ToRGB(total)
}

// Shade returns one light's unclamped contribution at hit: ambient always,
// then diffuse, specular and mirror reflection unless the point is in shadow
func (rt *Raytracer) Shade(ray core.Ray, hit geometry.Hit, light lights.PointLight, depth int) core.Color {
	if depth > rt.scene.MaxDepth {
		return core.Color{}
	}

	mat := hit.Material
	color := mat.Ambient.MultiplyVec(rt.scene.AmbientLight)

	lightDir, distance := light.Illuminate(hit.Point)
	if rt.occluded(hit.Point, lightDir, distance) {
		return color
	}

	irradiance := light.Intensity.Divide(distance * distance)

	// Diffuse
	cosine := math.Max(0, lightDir.Dot(hit.Normal)) / (hit.Normal.Length() * lightDir.Length())
	color = color.Add(irradiance.Multiply(cosine).MultiplyVec(mat.Diffuse))

	// Specular: the light direction mirrored about the normal, against the view direction
	reflection := lightDir.Negate().Reflect(hit.Normal)
	view := ray.Direction.Negate()
	specular := math.Pow(math.Max(0, reflection.Dot(view)), mat.PhongExponent)
	color = color.Add(irradiance.Multiply(specular).MultiplyVec(mat.Specular))

	// Mirror
	if depth < rt.scene.MaxDepth && mat.IsMirror() {
		reflectDir := ray.Direction.Reflect(hit.Normal).Normalize()
		reflectRay := core.Ray{
			Origin:    hit.Point.Add(reflectDir.Multiply(ReflectionEpsilon)),
			Direction: reflectDir,
		}
		reflected := rt.Trace(reflectRay, depth+1)
		color = color.Add(reflected.Unit().MultiplyVec(mat.Mirror))
	}

	return color
}
