package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Epsilon is the machine epsilon used to reject parallel rays and
// intersections at or behind a triangle ray's origin
const Epsilon = 2.220446049250313e-16

// Hit contains information about a ray-object intersection.
// A Hit is valid iff T is finite; misses carry T = +Inf.
type Hit struct {
	T        float64           // Parameter t along the ray
	Point    core.Point        // Point of intersection
	Normal   core.Vec3         // Surface normal at intersection
	Material material.Material // Material of the surface that was hit
}

// NoHit returns the sentinel miss record
func NoHit() Hit {
	return Hit{T: math.Inf(1)}
}

// IsHit reports whether the record describes an actual intersection
func (h Hit) IsHit() bool {
	return !math.IsInf(h.T, 0) && !math.IsNaN(h.T)
}

// Closer reports whether h is a valid hit strictly nearer than other.
// Misses never win, so the first of two equal hits is kept.
func (h Hit) Closer(other Hit) bool {
	return h.IsHit() && (!other.IsHit() || h.T < other.T)
}
