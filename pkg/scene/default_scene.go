package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with three spheres over a ground plane.
// The left sphere is a mirror.
func NewDefaultScene() *Scene {
	b := NewBuilder().
		SetMaxDepth(4).
		SetBackground(core.RGB{R: 40, G: 50, B: 70}).
		SetAmbientLight(core.NewVec3(25, 25, 25))

	b.AddCamera(geometry.Camera{
		ID:           1,
		Position:     core.NewVec3(0, 1, 4),
		Gaze:         core.NewVec3(0, -0.1, -1),
		Up:           core.NewVec3(0, 1, 0),
		Left:         -0.5,
		Right:        0.5,
		Bottom:       -0.5,
		Top:          0.5,
		NearDistance: 1,
		HRes:         400,
		VRes:         400,
		ImageName:    "default.png",
	})

	b.AddLight(lights.NewPointLight(1, core.NewVec3(5, 8, 5), core.NewVec3(40000, 40000, 40000)))
	b.AddLight(lights.NewPointLight(2, core.NewVec3(-6, 4, 2), core.NewVec3(8000, 8000, 10000)))

	// Materials are referenced by 1-based position
	b.AddMaterial(material.Material{ // 1: ground
		ID:      1,
		Ambient: core.NewVec3(0.1, 0.1, 0.1),
		Diffuse: core.NewVec3(0.48, 0.48, 0.0),
	})
	b.AddMaterial(material.Material{ // 2: glossy red
		ID:            2,
		Ambient:       core.NewVec3(0.1, 0.1, 0.1),
		Diffuse:       core.NewVec3(0.65, 0.25, 0.2),
		Specular:      core.NewVec3(0.6, 0.6, 0.6),
		PhongExponent: 50,
	})
	b.AddMaterial(material.Material{ // 3: mirror
		ID:            3,
		Ambient:       core.NewVec3(0.05, 0.05, 0.05),
		Diffuse:       core.NewVec3(0.1, 0.1, 0.1),
		Specular:      core.NewVec3(1, 1, 1),
		Mirror:        core.NewVec3(0.8, 0.8, 0.8),
		PhongExponent: 200,
	})
	b.AddMaterial(material.Material{ // 4: matte blue
		ID:      4,
		Ambient: core.NewVec3(0.1, 0.1, 0.1),
		Diffuse: core.NewVec3(0.1, 0.2, 0.5),
	})

	b.AddVertices(
		core.NewVec3(-5, 0, -5), core.NewVec3(-5, 0, 5), core.NewVec3(5, 0, 5), core.NewVec3(5, 0, -5),
		core.NewVec3(0, 0.5, -1), core.NewVec3(-1.1, 0.5, -1), core.NewVec3(1.1, 0.5, -1),
	)

	b.AddMesh(1, 1, [][3]int{{1, 2, 3}, {1, 3, 4}})
	b.AddSphere(2, 2, 5, 0.5)
	b.AddSphere(3, 3, 6, 0.5)
	b.AddSphere(4, 4, 7, 0.5)

	return mustBuild(b)
}

func mustBuild(b *Builder) *Scene {
	s, err := b.Build()
	if err != nil {
		panic("built-in scene is invalid: " + err.Error())
	}
	return s
}
