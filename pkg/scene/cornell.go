package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box with mesh walls, a point light
// below the ceiling, a diffuse sphere and a mirror sphere
func NewCornellScene() *Scene {
	b := NewBuilder().
		SetMaxDepth(6).
		SetBackground(core.RGB{}).
		SetAmbientLight(core.NewVec3(20, 20, 20))

	// Position camera outside the box looking in; 40 degree vertical field of view
	const halfExtent = 0.36397
	b.AddCamera(geometry.Camera{
		ID:           1,
		Position:     core.NewVec3(278, 278, -800),
		Gaze:         core.NewVec3(0, 0, 1),
		Up:           core.NewVec3(0, 1, 0),
		Left:         -halfExtent,
		Right:        halfExtent,
		Bottom:       -halfExtent,
		Top:          halfExtent,
		NearDistance: 1,
		HRes:         400,
		VRes:         400,
		ImageName:    "cornell.png",
	})

	b.AddLight(lights.NewPointLight(1, core.NewVec3(278, 500, 278), core.NewVec3(2e7, 2e7, 2e7)))

	b.AddMaterial(material.NewDiffuse(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.73, 0.73, 0.73))) // 1: white
	b.AddMaterial(material.NewDiffuse(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.65, 0.05, 0.05))) // 2: red
	b.AddMaterial(material.NewDiffuse(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.12, 0.45, 0.15))) // 3: green
	b.AddMaterial(material.Material{ // 4: mirror
		Ambient:       core.NewVec3(0.05, 0.05, 0.05),
		Specular:      core.NewVec3(1, 1, 1),
		Mirror:        core.NewVec3(0.9, 0.9, 0.9),
		PhongExponent: 300,
	})

	// Cornell box dimensions (standard 555x555x555 units); every wall faces inward
	const boxSize = 555.0
	walls := []struct {
		material int
		corner   core.Vec3
		u, v     core.Vec3
	}{
		{1, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0)},             // floor
		{1, core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize)},       // ceiling
		{1, core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0)},       // back
		{2, core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0)},       // left (red)
		{3, core.NewVec3(0, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize)},             // right (green)
	}
	for i, wall := range walls {
		b.AddMeshFaces(i+1, wall.material, quadFaces(wall.corner, wall.u, wall.v))
	}

	b.AddVertices(core.NewVec3(370, 100, 370), core.NewVec3(180, 90, 200))
	b.AddSphere(len(walls)+1, 4, b.VertexCount()-1, 100)
	b.AddSphere(len(walls)+2, 1, b.VertexCount(), 90)

	return mustBuild(b)
}

// quadFaces splits the parallelogram corner + s*u + t*v into two triangles
// whose normals point along u x v
func quadFaces(corner, u, v core.Vec3) []geometry.Face {
	c1 := corner.Add(u)
	c2 := corner.Add(u).Add(v)
	c3 := corner.Add(v)
	return []geometry.Face{
		{corner, c1, c2},
		{corner, c2, c3},
	}
}
