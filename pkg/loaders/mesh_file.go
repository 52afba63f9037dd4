package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fogleman/fauxgl"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// meshLoaders maps supported mesh file extensions to their fauxgl reader
var meshLoaders = map[string]func(string) (*fauxgl.Mesh, error){
	".obj": fauxgl.LoadOBJ,
	".stl": fauxgl.LoadSTL,
	".ply": fauxgl.LoadPLY,
}

// LoadMeshFile reads an OBJ, STL or PLY file referenced from a scene in
// baseDir and returns its triangles as mesh faces
func LoadMeshFile(baseDir, name string) ([]geometry.Face, error) {
	path, err := resolveMeshPath(baseDir, name)
	if err != nil {
		return nil, err
	}

	load := meshLoaders[strings.ToLower(filepath.Ext(path))]
	mesh, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh file %s: %w", name, err)
	}
	return facesFromMesh(mesh), nil
}

func facesFromMesh(mesh *fauxgl.Mesh) []geometry.Face {
	faces := make([]geometry.Face, 0, len(mesh.Triangles))
	for _, t := range mesh.Triangles {
		faces = append(faces, geometry.Face{
			toPoint(t.V1.Position),
			toPoint(t.V2.Position),
			toPoint(t.V3.Position),
		})
	}
	return faces
}

func toPoint(v fauxgl.Vector) core.Point {
	return core.NewVec3(v.X, v.Y, v.Z)
}

// resolveMeshPath validates a mesh reference and joins it onto baseDir
func resolveMeshPath(baseDir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("mesh file name cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(name, "\x00") {
		return "", fmt.Errorf("invalid mesh path: null bytes not allowed")
	}

	if filepath.IsAbs(name) {
		return "", fmt.Errorf("invalid mesh path %q: must be relative to the scene file", name)
	}

	cleanPath := filepath.Clean(name)
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid mesh path %q: directory traversal not allowed", name)
	}

	if _, ok := meshLoaders[strings.ToLower(filepath.Ext(cleanPath))]; !ok {
		return "", fmt.Errorf("invalid mesh file type %q: only .obj, .stl and .ply files are allowed", name)
	}

	if len(cleanPath) > 512 {
		return "", fmt.Errorf("mesh path too long: maximum 512 characters allowed")
	}

	return filepath.Join(baseDir, cleanPath), nil
}
