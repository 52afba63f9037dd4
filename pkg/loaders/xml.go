package loaders

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// SupportedVersions is the range of scene format versions this loader reads.
// Files without a version attribute are accepted.
const SupportedVersions = "^1"

var (
	ErrUnsupportedVersion = errors.New("unsupported scene version")
	ErrMissingElement     = errors.New("missing required element")
	ErrUnknownObject      = errors.New("unknown object element")
)

// xmlScene mirrors the <Scene> document
type xmlScene struct {
	XMLName         xml.Name      `xml:"Scene"`
	Version         string        `xml:"version,attr"`
	MaxDepth        string        `xml:"maxraytracedepth"`
	BackgroundColor string        `xml:"BackgroundColor"`
	Cameras         *xmlCameras   `xml:"Cameras"`
	Lights          xmlLights     `xml:"Lights"`
	Materials       []xmlMaterial `xml:"Materials>Material"`
	VertexData      string        `xml:"VertexData"`
	Objects         xmlObjects    `xml:"Objects"`
}

type xmlCameras struct {
	Cameras []xmlCamera `xml:"Camera"`
}

type xmlCamera struct {
	ID              int    `xml:"id,attr"`
	Position        string `xml:"Position"`
	Gaze            string `xml:"Gaze"`
	Up              string `xml:"Up"`
	NearPlane       string `xml:"NearPlane"`
	NearDistance    string `xml:"NearDistance"`
	ImageResolution string `xml:"ImageResolution"`
	ImageName       string `xml:"ImageName"`
}

type xmlLights struct {
	AmbientLight string          `xml:"AmbientLight"`
	PointLights  []xmlPointLight `xml:"PointLight"`
}

type xmlPointLight struct {
	ID        int    `xml:"id,attr"`
	Position  string `xml:"Position"`
	Intensity string `xml:"Intensity"`
}

type xmlMaterial struct {
	ID            int    `xml:"id,attr"`
	Ambient       string `xml:"AmbientReflectance"`
	Diffuse       string `xml:"DiffuseReflectance"`
	Specular      string `xml:"SpecularReflectance"`
	Mirror        string `xml:"MirrorReflectance"`
	PhongExponent string `xml:"PhongExponent"`
}

// xmlObjects keeps every child element in document order
type xmlObjects struct {
	Items []xmlObject `xml:",any"`
}

type xmlObject struct {
	XMLName  xml.Name
	ID       int       `xml:"id,attr"`
	Material string    `xml:"Material"`
	Faces    *xmlFaces `xml:"Faces"`
	Indices  string    `xml:"Indices"`
	Center   string    `xml:"Center"`
	Radius   string    `xml:"Radius"`
}

type xmlFaces struct {
	File string `xml:"file,attr"`
	Data string `xml:",chardata"`
}

// LoadXML loads and parses an XML scene file. External mesh files are
// resolved relative to the scene file's directory.
func LoadXML(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseXML(file, filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// ParseXML parses an XML scene from reader. baseDir is used to resolve
// <Faces file="..."/> references; an empty baseDir disables them.
func ParseXML(reader io.Reader, baseDir string) (*scene.Scene, error) {
	var doc xmlScene
	if err := xml.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, fmt.Errorf("error reading scene: %w", err)
	}

	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}

	p := &xmlParser{builder: scene.NewBuilder(), baseDir: baseDir}
	steps := []func(*xmlScene) error{
		p.parseHeader,
		p.parseCameras,
		p.parseLights,
		p.parseMaterials,
		p.parseVertexData,
		p.parseObjects,
	}
	for _, step := range steps {
		if err := step(&doc); err != nil {
			return nil, err
		}
	}

	return p.builder.Build()
}

func checkVersion(version string) error {
	if version == "" {
		return nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedVersion, version, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}

type xmlParser struct {
	builder *scene.Builder
	baseDir string
}

func (p *xmlParser) parseHeader(doc *xmlScene) error {
	if strings.TrimSpace(doc.MaxDepth) != "" {
		depth, err := parseInts(doc.MaxDepth, 1)
		if err != nil {
			return fmt.Errorf("maxraytracedepth: %w", err)
		}
		p.builder.SetMaxDepth(depth[0])
	}

	if strings.TrimSpace(doc.BackgroundColor) != "" {
		rgb, err := parseInts(doc.BackgroundColor, 3)
		if err != nil {
			return fmt.Errorf("BackgroundColor: %w", err)
		}
		p.builder.SetBackground(core.NewRGB(rgb[0], rgb[1], rgb[2]))
	}
	return nil
}

func (p *xmlParser) parseCameras(doc *xmlScene) error {
	if doc.Cameras == nil {
		return fmt.Errorf("%w: Cameras", ErrMissingElement)
	}

	for _, c := range doc.Cameras.Cameras {
		cam, err := c.toCamera()
		if err != nil {
			return fmt.Errorf("camera %d: %w", c.ID, err)
		}
		p.builder.AddCamera(cam)
	}
	return nil
}

func (c xmlCamera) toCamera() (geometry.Camera, error) {
	cam := geometry.Camera{ID: c.ID, ImageName: strings.TrimSpace(c.ImageName)}
	var err error

	if cam.Position, err = parseVec3(c.Position); err != nil {
		return cam, fmt.Errorf("Position: %w", err)
	}
	if cam.Gaze, err = parseVec3(c.Gaze); err != nil {
		return cam, fmt.Errorf("Gaze: %w", err)
	}
	if cam.Up, err = parseVec3(c.Up); err != nil {
		return cam, fmt.Errorf("Up: %w", err)
	}

	plane, err := parseFloats(c.NearPlane, 4)
	if err != nil {
		return cam, fmt.Errorf("NearPlane: %w", err)
	}
	cam.Left, cam.Right, cam.Bottom, cam.Top = plane[0], plane[1], plane[2], plane[3]

	distance, err := parseFloats(c.NearDistance, 1)
	if err != nil {
		return cam, fmt.Errorf("NearDistance: %w", err)
	}
	cam.NearDistance = distance[0]

	res, err := parseInts(c.ImageResolution, 2)
	if err != nil {
		return cam, fmt.Errorf("ImageResolution: %w", err)
	}
	cam.HRes, cam.VRes = res[0], res[1]

	return cam, nil
}

func (p *xmlParser) parseLights(doc *xmlScene) error {
	if strings.TrimSpace(doc.Lights.AmbientLight) != "" {
		ambient, err := parseVec3(doc.Lights.AmbientLight)
		if err != nil {
			return fmt.Errorf("AmbientLight: %w", err)
		}
		p.builder.SetAmbientLight(ambient)
	}

	for _, l := range doc.Lights.PointLights {
		position, err := parseVec3(l.Position)
		if err != nil {
			return fmt.Errorf("point light %d Position: %w", l.ID, err)
		}
		intensity, err := parseVec3(l.Intensity)
		if err != nil {
			return fmt.Errorf("point light %d Intensity: %w", l.ID, err)
		}
		p.builder.AddLight(lights.NewPointLight(l.ID, position, intensity))
	}
	return nil
}

func (p *xmlParser) parseMaterials(doc *xmlScene) error {
	for _, m := range doc.Materials {
		mat, err := m.toMaterial()
		if err != nil {
			return fmt.Errorf("material %d: %w", m.ID, err)
		}
		p.builder.AddMaterial(mat)
	}
	return nil
}

func (m xmlMaterial) toMaterial() (material.Material, error) {
	mat := material.Material{ID: m.ID}
	fields := []struct {
		name  string
		text  string
		value *core.Color
	}{
		{"AmbientReflectance", m.Ambient, &mat.Ambient},
		{"DiffuseReflectance", m.Diffuse, &mat.Diffuse},
		{"SpecularReflectance", m.Specular, &mat.Specular},
		{"MirrorReflectance", m.Mirror, &mat.Mirror},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.text) == "" {
			continue
		}
		c, err := parseVec3(f.text)
		if err != nil {
			return mat, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.value = c
	}

	if strings.TrimSpace(m.PhongExponent) != "" {
		phong, err := parseFloats(m.PhongExponent, 1)
		if err != nil {
			return mat, fmt.Errorf("PhongExponent: %w", err)
		}
		mat.PhongExponent = phong[0]
	}
	return mat, nil
}

func (p *xmlParser) parseVertexData(doc *xmlScene) error {
	values, err := parseFloats(doc.VertexData, -1)
	if err != nil {
		return fmt.Errorf("VertexData: %w", err)
	}
	if len(values)%3 != 0 {
		return fmt.Errorf("VertexData: %d values is not a multiple of 3", len(values))
	}
	for i := 0; i < len(values); i += 3 {
		p.builder.AddVertex(core.NewVec3(values[i], values[i+1], values[i+2]))
	}
	return nil
}

func (p *xmlParser) parseObjects(doc *xmlScene) error {
	for _, obj := range doc.Objects.Items {
		var err error
		switch obj.XMLName.Local {
		case "Mesh":
			err = p.parseMesh(obj)
		case "Triangle":
			err = p.parseTriangle(obj)
		case "Sphere":
			err = p.parseSphere(obj)
		default:
			err = fmt.Errorf("%w: <%s>", ErrUnknownObject, obj.XMLName.Local)
		}
		if err != nil {
			return fmt.Errorf("%s %d: %w", obj.XMLName.Local, obj.ID, err)
		}
	}
	return nil
}

func (p *xmlParser) materialRef(obj xmlObject) (int, error) {
	ref, err := parseInts(obj.Material, 1)
	if err != nil {
		return 0, fmt.Errorf("Material: %w", err)
	}
	return ref[0], nil
}

func (p *xmlParser) parseMesh(obj xmlObject) error {
	materialRef, err := p.materialRef(obj)
	if err != nil {
		return err
	}
	if obj.Faces == nil {
		return fmt.Errorf("%w: Faces", ErrMissingElement)
	}

	if obj.Faces.File != "" {
		if p.baseDir == "" {
			return fmt.Errorf("external mesh %q cannot be resolved without a scene directory", obj.Faces.File)
		}
		faces, err := LoadMeshFile(p.baseDir, obj.Faces.File)
		if err != nil {
			return err
		}
		p.builder.AddMeshFaces(obj.ID, materialRef, faces)
		return nil
	}

	indices, err := parseInts(obj.Faces.Data, -1)
	if err != nil {
		return fmt.Errorf("Faces: %w", err)
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("Faces: %d indices is not a multiple of 3", len(indices))
	}
	faces := make([][3]int, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		faces = append(faces, [3]int{indices[i], indices[i+1], indices[i+2]})
	}
	p.builder.AddMesh(obj.ID, materialRef, faces)
	return nil
}

func (p *xmlParser) parseTriangle(obj xmlObject) error {
	materialRef, err := p.materialRef(obj)
	if err != nil {
		return err
	}
	indices, err := parseInts(obj.Indices, 3)
	if err != nil {
		return fmt.Errorf("Indices: %w", err)
	}
	p.builder.AddTriangle(obj.ID, materialRef, [3]int{indices[0], indices[1], indices[2]})
	return nil
}

func (p *xmlParser) parseSphere(obj xmlObject) error {
	materialRef, err := p.materialRef(obj)
	if err != nil {
		return err
	}
	center, err := parseInts(obj.Center, 1)
	if err != nil {
		return fmt.Errorf("Center: %w", err)
	}
	radius, err := parseFloats(obj.Radius, 1)
	if err != nil {
		return fmt.Errorf("Radius: %w", err)
	}
	p.builder.AddSphere(obj.ID, materialRef, center[0], radius[0])
	return nil
}

// parseFloats parses whitespace separated numbers. count < 0 accepts any
// number of values.
func parseFloats(text string, count int) ([]float64, error) {
	fields := strings.Fields(text)
	if count >= 0 && len(fields) != count {
		if len(fields) == 0 {
			return nil, ErrMissingElement
		}
		return nil, fmt.Errorf("expected %d values, got %d", count, len(fields))
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number '%s': %v", f, err)
		}
		values[i] = v
	}
	return values, nil
}

func parseInts(text string, count int) ([]int, error) {
	fields := strings.Fields(text)
	if count >= 0 && len(fields) != count {
		if len(fields) == 0 {
			return nil, ErrMissingElement
		}
		return nil, fmt.Errorf("expected %d values, got %d", count, len(fields))
	}

	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid integer '%s': %v", f, err)
		}
		values[i] = v
	}
	return values, nil
}

func parseVec3(text string) (core.Vec3, error) {
	v, err := parseFloats(text, 3)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}
