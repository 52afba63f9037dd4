package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const simpleSceneXML = `<Scene version="1.0">
    <maxraytracedepth>3</maxraytracedepth>
    <BackgroundColor>0 0 20</BackgroundColor>
    <Cameras>
        <Camera id="1">
            <Position>0 0 0</Position>
            <Gaze>0 0 -1</Gaze>
            <Up>0 1 0</Up>
            <NearPlane>-1 1 -1 1</NearPlane>
            <NearDistance>1</NearDistance>
            <ImageResolution>800 600</ImageResolution>
            <ImageName>simple.ppm</ImageName>
        </Camera>
    </Cameras>
    <Lights>
        <AmbientLight>25 25 25</AmbientLight>
        <PointLight id="1">
            <Position>0 4 2</Position>
            <Intensity>1000 1000 1000</Intensity>
        </PointLight>
    </Lights>
    <Materials>
        <Material id="1">
            <AmbientReflectance>1 1 1</AmbientReflectance>
            <DiffuseReflectance>1 1 1</DiffuseReflectance>
            <SpecularReflectance>1 1 1</SpecularReflectance>
            <MirrorReflectance>0 0 0</MirrorReflectance>
            <PhongExponent>1</PhongExponent>
        </Material>
        <Material id="2">
            <AmbientReflectance>0.1 0.1 0.1</AmbientReflectance>
            <DiffuseReflectance>0.5 0.2 0.2</DiffuseReflectance>
            <SpecularReflectance>0 0 0</SpecularReflectance>
            <MirrorReflectance>0.5 0.5 0.5</MirrorReflectance>
            <PhongExponent>20</PhongExponent>
        </Material>
    </Materials>
    <VertexData>
        -1 -1 -5
        1 -1 -5
        1 1 -5
        -1 1 -5
        0 0 -8
    </VertexData>
    <Objects>
        <Sphere id="1">
            <Material>2</Material>
            <Center>5</Center>
            <Radius>1.5</Radius>
        </Sphere>
        <Mesh id="1">
            <Material>1</Material>
            <Faces>
                1 2 3
                1 3 4
            </Faces>
        </Mesh>
        <Triangle id="1">
            <Material>1</Material>
            <Indices>2 3 4</Indices>
        </Triangle>
    </Objects>
</Scene>`

func TestParseXML(t *testing.T) {
	s, err := ParseXML(strings.NewReader(simpleSceneXML), "")
	if err != nil {
		t.Fatalf("ParseXML failed: %v", err)
	}

	if s.MaxDepth != 3 {
		t.Errorf("Expected max depth 3, got %d", s.MaxDepth)
	}
	if s.BackgroundColor != (core.RGB{B: 20}) {
		t.Errorf("Expected background (0,0,20), got %v", s.BackgroundColor)
	}
	if s.AmbientLight != core.NewVec3(25, 25, 25) {
		t.Errorf("Expected ambient light 25, got %v", s.AmbientLight)
	}

	if len(s.Cameras) != 1 {
		t.Fatalf("Expected 1 camera, got %d", len(s.Cameras))
	}
	cam := s.Cameras[0]
	if cam.HRes != 800 || cam.VRes != 600 || cam.ImageName != "simple.ppm" {
		t.Errorf("Unexpected camera %+v", cam)
	}
	if cam.Left != -1 || cam.Right != 1 || cam.Bottom != -1 || cam.Top != 1 || cam.NearDistance != 1 {
		t.Errorf("Unexpected near plane %+v", cam)
	}

	if len(s.Lights) != 1 || s.Lights[0].Intensity != core.NewVec3(1000, 1000, 1000) {
		t.Errorf("Unexpected lights %+v", s.Lights)
	}
	if len(s.Materials) != 2 || s.Materials[1].PhongExponent != 20 || !s.Materials[1].IsMirror() {
		t.Errorf("Unexpected materials %+v", s.Materials)
	}
	if len(s.Vertices) != 5 {
		t.Errorf("Expected 5 vertices, got %d", len(s.Vertices))
	}

	// Object order is preserved
	kinds := []geometry.Kind{geometry.KindSphere, geometry.KindMesh, geometry.KindTriangle}
	if len(s.Shapes) != len(kinds) {
		t.Fatalf("Expected %d shapes, got %d", len(kinds), len(s.Shapes))
	}
	for i, k := range kinds {
		if s.Shapes[i].Kind() != k {
			t.Errorf("Shape %d: expected %s, got %s", i, k, s.Shapes[i].Kind())
		}
	}

	sphere := s.Shapes[0].(*geometry.Sphere)
	if sphere.Center != core.NewVec3(0, 0, -8) || sphere.Radius != 1.5 || sphere.Material.PhongExponent != 20 {
		t.Errorf("Sphere references resolved incorrectly: %+v", sphere)
	}
	if mesh := s.Shapes[1].(*geometry.Mesh); mesh.TriangleCount() != 2 {
		t.Errorf("Expected 2 mesh faces, got %d", mesh.TriangleCount())
	}
	if s.GetPrimitiveCount() != 4 {
		t.Errorf("Expected 4 primitives, got %d", s.GetPrimitiveCount())
	}
}

func TestParseXML_OptionalElements(t *testing.T) {
	doc := `<Scene>
    <Cameras>
        <Camera id="1">
            <Position>0 0 0</Position><Gaze>0 0 -1</Gaze><Up>0 1 0</Up>
            <NearPlane>-1 1 -1 1</NearPlane><NearDistance>1</NearDistance>
            <ImageResolution>4 4</ImageResolution><ImageName>a.ppm</ImageName>
        </Camera>
    </Cameras>
</Scene>`

	s, err := ParseXML(strings.NewReader(doc), "")
	if err != nil {
		t.Fatalf("ParseXML failed: %v", err)
	}
	if s.MaxDepth != 0 || s.BackgroundColor != (core.RGB{}) || len(s.Shapes) != 0 || len(s.Lights) != 0 {
		t.Errorf("Expected zero defaults, got %+v", s)
	}
}

func TestParseXML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr error
	}{
		{
			name:    "missing cameras",
			mutate:  func(d string) string { return cutElement(d, "<Cameras>", "</Cameras>") },
			wantErr: ErrMissingElement,
		},
		{
			name:    "material reference out of range",
			mutate:  func(d string) string { return strings.Replace(d, "<Material>2</Material>", "<Material>3</Material>", 1) },
			wantErr: scene.ErrMaterialIndex,
		},
		{
			name:    "vertex reference out of range",
			mutate:  func(d string) string { return strings.Replace(d, "<Indices>2 3 4</Indices>", "<Indices>2 3 6</Indices>", 1) },
			wantErr: scene.ErrVertexIndex,
		},
		{
			name:    "zero-based reference",
			mutate:  func(d string) string { return strings.Replace(d, "<Center>5</Center>", "<Center>0</Center>", 1) },
			wantErr: scene.ErrVertexIndex,
		},
		{
			name:    "unsupported version",
			mutate:  func(d string) string { return strings.Replace(d, `version="1.0"`, `version="2.1"`, 1) },
			wantErr: ErrUnsupportedVersion,
		},
		{
			name: "unknown object",
			mutate: func(d string) string {
				return strings.Replace(d, "<Objects>", "<Objects><Torus id=\"1\"/>", 1)
			},
			wantErr: ErrUnknownObject,
		},
		{
			name: "oversized resolution",
			mutate: func(d string) string {
				return strings.Replace(d, "<ImageResolution>800 600</ImageResolution>",
					"<ImageResolution>4294967296 4294967296</ImageResolution>", 1)
			},
			wantErr: scene.ErrInvalidCamera,
		},
		{
			name:   "malformed number",
			mutate: func(d string) string { return strings.Replace(d, "<Radius>1.5</Radius>", "<Radius>wide</Radius>", 1) },
		},
		{
			name:   "truncated vertex data",
			mutate: func(d string) string { return strings.Replace(d, "0 0 -8", "0 0", 1) },
		},
		{
			name:   "not xml",
			mutate: func(string) string { return "Scene {" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseXML(strings.NewReader(tt.mutate(simpleSceneXML)), "")
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func cutElement(doc, open, close string) string {
	start := strings.Index(doc, open)
	end := strings.Index(doc, close)
	return doc[:start] + doc[end+len(close):]
}

func TestLoadXML_ExternalMesh(t *testing.T) {
	dir := t.TempDir()

	obj := "v -1 -1 -5\nv 1 -1 -5\nv 0 1 -5\nf 1 2 3\n"
	if err := os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(obj), 0644); err != nil {
		t.Fatalf("Failed to write mesh: %v", err)
	}

	doc := strings.Replace(simpleSceneXML, `<Faces>
                1 2 3
                1 3 4
            </Faces>`, `<Faces file="tri.obj"/>`, 1)
	path := filepath.Join(dir, "scene.xml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	s, err := LoadXML(path)
	if err != nil {
		t.Fatalf("LoadXML failed: %v", err)
	}

	mesh, ok := s.Shapes[1].(*geometry.Mesh)
	if !ok {
		t.Fatalf("Expected shape 1 to be a mesh, got %T", s.Shapes[1])
	}
	if mesh.TriangleCount() != 1 {
		t.Fatalf("Expected 1 face from the OBJ file, got %d", mesh.TriangleCount())
	}
	if mesh.Faces[0][2] != core.NewVec3(0, 1, -5) {
		t.Errorf("Unexpected third vertex %v", mesh.Faces[0][2])
	}
}

func TestParseXML_ExternalMeshNeedsDirectory(t *testing.T) {
	doc := strings.Replace(simpleSceneXML, `<Faces>
                1 2 3
                1 3 4
            </Faces>`, `<Faces file="tri.obj"/>`, 1)

	if _, err := ParseXML(strings.NewReader(doc), ""); err == nil {
		t.Error("Expected an error for an external mesh without a scene directory")
	}
}

func TestLoadXML_MissingFile(t *testing.T) {
	if _, err := LoadXML(filepath.Join(t.TempDir(), "nope.xml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}
