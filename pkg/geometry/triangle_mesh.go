package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Face is one triangle of a mesh, vertices in winding order
type Face [3]core.Point

// Mesh is a list of triangles sharing one material.
// There is no acceleration structure; every face is tested.
type Mesh struct {
	id       int
	Faces    []Face
	Material material.Material
}

// NewMesh creates a mesh from already resolved faces
func NewMesh(id int, faces []Face, material material.Material) *Mesh {
	return &Mesh{id: id, Faces: faces, Material: material}
}

// NewTriangleMesh creates a mesh from vertices and face indices.
// Each group of 3 zero-based indices forms a triangle.
func NewTriangleMesh(id int, vertices []core.Point, indices []int, material material.Material) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(indices))
	}

	faces := make([]Face, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		var face Face
		for k := 0; k < 3; k++ {
			idx := indices[i+k]
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of bounds (%d vertices)", i/3, idx, len(vertices))
			}
			face[k] = vertices[idx]
		}
		faces = append(faces, face)
	}

	return NewMesh(id, faces, material), nil
}

func (m *Mesh) ID() int    { return m.id }
func (m *Mesh) Kind() Kind { return KindMesh }

// TriangleCount returns the number of triangles in this mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// Intersect returns the nearest hit across all faces, carrying the mesh material
func (m *Mesh) Intersect(ray core.Ray) Hit {
	closest := NoHit()
	for _, face := range m.Faces {
		hit := intersectTriangle(ray, face[0], face[1], face[2], m.Material)
		if hit.T < closest.T {
			closest = hit
		}
	}
	closest.Material = m.Material
	return closest
}
