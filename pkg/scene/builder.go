package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var (
	ErrNoCamera      = errors.New("scene has no cameras")
	ErrMaterialIndex = errors.New("material reference out of range")
	ErrVertexIndex   = errors.New("vertex reference out of range")
	ErrInvalidShape  = errors.New("invalid shape")
	ErrInvalidCamera = errors.New("invalid camera")
)

const (
	// MaxResolution bounds each image axis of a camera
	MaxResolution = 1 << 15
	// MaxPixels bounds the pixel count of a single camera image
	MaxPixels = 1 << 26
)

// Builder assembles a Scene and resolves 1-based material and vertex
// references. The first error is kept and returned by Build; later calls
// become no-ops.
type Builder struct {
	scene *Scene
	err   error
}

// NewBuilder creates a builder for an empty scene
func NewBuilder() *Builder {
	return &Builder{scene: &Scene{}}
}

// Err returns the first error encountered so far
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// SetMaxDepth sets the maximum mirror recursion depth
func (b *Builder) SetMaxDepth(depth int) *Builder {
	if depth < 0 {
		b.fail(fmt.Errorf("max ray trace depth must not be negative, got %d", depth))
		return b
	}
	b.scene.MaxDepth = depth
	return b
}

// SetBackground sets the color returned by rays that miss everything
func (b *Builder) SetBackground(c core.RGB) *Builder {
	b.scene.BackgroundColor = c
	return b
}

// SetAmbientLight sets the ambient light color
func (b *Builder) SetAmbientLight(c core.Color) *Builder {
	b.scene.AmbientLight = c
	return b
}

// AddCamera appends a camera
func (b *Builder) AddCamera(c geometry.Camera) *Builder {
	if c.HRes <= 0 || c.VRes <= 0 || c.HRes > MaxResolution || c.VRes > MaxResolution {
		b.fail(fmt.Errorf("%w: camera %d has resolution %dx%d, each axis must be between 1 and %d",
			ErrInvalidCamera, c.ID, c.HRes, c.VRes, MaxResolution))
		return b
	}
	if c.HRes*c.VRes > MaxPixels {
		b.fail(fmt.Errorf("%w: camera %d has %d pixels, the limit is %d",
			ErrInvalidCamera, c.ID, c.HRes*c.VRes, MaxPixels))
		return b
	}
	b.scene.Cameras = append(b.scene.Cameras, c)
	return b
}

// AddLight appends a point light
func (b *Builder) AddLight(l lights.PointLight) *Builder {
	b.scene.Lights = append(b.scene.Lights, l)
	return b
}

// AddMaterial appends a material; it is referenced by its 1-based position
func (b *Builder) AddMaterial(m material.Material) *Builder {
	b.scene.Materials = append(b.scene.Materials, m)
	return b
}

// AddVertex appends a vertex; it is referenced by its 1-based position
func (b *Builder) AddVertex(v core.Point) *Builder {
	b.scene.Vertices = append(b.scene.Vertices, v)
	return b
}

// AddVertices appends several vertices
func (b *Builder) AddVertices(vs ...core.Point) *Builder {
	b.scene.Vertices = append(b.scene.Vertices, vs...)
	return b
}

// VertexCount returns the number of vertices added so far
func (b *Builder) VertexCount() int {
	return len(b.scene.Vertices)
}

func (b *Builder) material(ref int) (material.Material, bool) {
	if ref < 1 || ref > len(b.scene.Materials) {
		b.fail(fmt.Errorf("%w: %d (have %d)", ErrMaterialIndex, ref, len(b.scene.Materials)))
		return material.Material{}, false
	}
	return b.scene.Materials[ref-1], true
}

func (b *Builder) vertex(ref int) (core.Point, bool) {
	if ref < 1 || ref > len(b.scene.Vertices) {
		b.fail(fmt.Errorf("%w: %d (have %d)", ErrVertexIndex, ref, len(b.scene.Vertices)))
		return core.Point{}, false
	}
	return b.scene.Vertices[ref-1], true
}

func (b *Builder) face(refs [3]int) (geometry.Face, bool) {
	var face geometry.Face
	for k, ref := range refs {
		v, ok := b.vertex(ref)
		if !ok {
			return face, false
		}
		face[k] = v
	}
	return face, true
}

// AddSphere appends a sphere centered on a vertex
func (b *Builder) AddSphere(id, materialRef, centerRef int, radius float64) *Builder {
	if b.err != nil {
		return b
	}
	if radius <= 0 {
		b.fail(fmt.Errorf("%w: sphere %d has radius %g", ErrInvalidShape, id, radius))
		return b
	}
	mat, ok := b.material(materialRef)
	if !ok {
		return b
	}
	center, ok := b.vertex(centerRef)
	if !ok {
		return b
	}
	b.scene.Shapes = append(b.scene.Shapes, geometry.NewSphere(id, center, radius, mat))
	return b
}

// AddTriangle appends a triangle built from three vertex references
func (b *Builder) AddTriangle(id, materialRef int, refs [3]int) *Builder {
	if b.err != nil {
		return b
	}
	mat, ok := b.material(materialRef)
	if !ok {
		return b
	}
	face, ok := b.face(refs)
	if !ok {
		return b
	}
	b.scene.Shapes = append(b.scene.Shapes, geometry.NewTriangle(id, face[0], face[1], face[2], mat))
	return b
}

// AddMesh appends a mesh whose faces are vertex reference triples
func (b *Builder) AddMesh(id, materialRef int, faces [][3]int) *Builder {
	if b.err != nil {
		return b
	}
	mat, ok := b.material(materialRef)
	if !ok {
		return b
	}
	resolved := make([]geometry.Face, 0, len(faces))
	for _, refs := range faces {
		face, ok := b.face(refs)
		if !ok {
			return b
		}
		resolved = append(resolved, face)
	}
	b.scene.Shapes = append(b.scene.Shapes, geometry.NewMesh(id, resolved, mat))
	return b
}

// AddMeshFaces appends a mesh whose faces are already world-space triangles
func (b *Builder) AddMeshFaces(id, materialRef int, faces []geometry.Face) *Builder {
	if b.err != nil {
		return b
	}
	mat, ok := b.material(materialRef)
	if !ok {
		return b
	}
	b.scene.Shapes = append(b.scene.Shapes, geometry.NewMesh(id, faces, mat))
	return b
}

// Build returns the finished scene or the first construction error
func (b *Builder) Build() (*Scene, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.scene.Cameras) == 0 {
		return nil, ErrNoCamera
	}
	return b.scene, nil
}
