package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	id       int
	Center   core.Point
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(id int, center core.Point, radius float64, material material.Material) *Sphere {
	return &Sphere{
		id:       id,
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

func (s *Sphere) ID() int    { return s.id }
func (s *Sphere) Kind() Kind { return KindSphere }

// Intersect solves |O + tD - C|^2 = r^2 and returns the nearest
// non-negative root
func (s *Sphere) Intersect(ray core.Ray) Hit {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return NoHit()
	}

	var t0, t1 float64
	if discriminant == 0 {
		t0 = -0.5 * b / a
		t1 = t0
	} else {
		// Numerically stable form: avoid subtracting nearly equal values
		var q float64
		if b > 0 {
			q = -0.5 * (b + math.Sqrt(discriminant))
		} else {
			q = -0.5 * (b - math.Sqrt(discriminant))
		}
		t0 = q / a
		t1 = c / q
	}
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	if t0 < 0 {
		t0 = t1
		if t0 < 0 {
			return NoHit()
		}
	}

	point := ray.At(t0)
	return Hit{
		T:        t0,
		Point:    point,
		Normal:   point.Subtract(s.Center).Normalize(),
		Material: s.Material,
	}
}
