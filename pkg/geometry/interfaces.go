package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Kind identifies the concrete primitive behind a Shape
type Kind int

const (
	KindSphere Kind = iota
	KindTriangle
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "Sphere"
	case KindTriangle:
		return "Triangle"
	case KindMesh:
		return "Mesh"
	default:
		return "Unknown"
	}
}

// Shape interface for objects that can be hit by rays.
// Intersect never fails; a miss is reported with NoHit.
type Shape interface {
	Intersect(ray core.Ray) Hit
	Kind() Kind
	ID() int
}
