package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Triangle represents a single triangle defined by three ordered vertices
type Triangle struct {
	id         int
	V0, V1, V2 core.Point        // The three vertices
	Material   material.Material // Material of the triangle
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(id int, v0, v1, v2 core.Point, material material.Material) *Triangle {
	return &Triangle{
		id:       id,
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
	}
}

func (t *Triangle) ID() int    { return t.id }
func (t *Triangle) Kind() Kind { return KindTriangle }

// Normal returns the winding-determined unit normal (e1 x e2)
func (t *Triangle) Normal() core.Vec3 {
	return t.V1.Subtract(t.V0).Cross(t.V2.Subtract(t.V0)).Normalize()
}

// Intersect tests the ray against the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray) Hit {
	return intersectTriangle(ray, t.V0, t.V1, t.V2, t.Material)
}

func intersectTriangle(ray core.Ray, v0, v1, v2 core.Point, mat material.Material) Hit {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies parallel to the plane of the triangle
	if a > -Epsilon && a < Epsilon {
		return NoHit()
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return NoHit()
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return NoHit()
	}

	tParam := f * edge2.Dot(q)
	if tParam <= Epsilon {
		return NoHit()
	}

	return Hit{
		T:        tParam,
		Point:    ray.At(tParam),
		Normal:   edge1.Cross(edge2).Normalize(),
		Material: mat,
	}
}
