package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering.
// Once built it is read-only and shared by every render worker.
type Scene struct {
	MaxDepth        int      // Maximum mirror recursion depth
	BackgroundColor core.RGB // Returned for rays that hit nothing
	Cameras         []geometry.Camera
	AmbientLight    core.Color
	Lights          []lights.PointLight
	Materials       []material.Material // Construction-time lookup table
	Vertices        []core.Point        // Construction-time vertex pool
	Shapes          []geometry.Shape    // Objects in insertion order
}

// GetShapes returns the scene primitives in insertion order
func (s *Scene) GetShapes() []geometry.Shape {
	return s.Shapes
}

// GetLights returns the point lights
func (s *Scene) GetLights() []lights.PointLight {
	return s.Lights
}

// GetPrimitiveCount returns the total number of triangles and spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		if mesh, ok := shape.(*geometry.Mesh); ok {
			count += mesh.TriangleCount()
		} else {
			count++
		}
	}
	return count
}

// Release drops every primitive and the construction tables.
// The scene must not be rendered afterwards.
func (s *Scene) Release() {
	clear(s.Shapes)
	s.Shapes = nil
	s.Materials = nil
	s.Vertices = nil
}
