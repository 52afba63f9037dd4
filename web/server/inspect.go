package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for a pixel pick
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	ObjectID     int                    `json:"objectId"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]uint8               `json:"color"`
	Properties   map[string]interface{} `json:"properties"`
}

// handleInspect responds with the plain-text description of a scene
func (s *Server) handleInspect(c echo.Context) error {
	sc, err := s.requestScene(c, sceneParam(c))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid scene: "+err.Error())
	}
	defer sc.Release()

	var sb strings.Builder
	if err := sc.Describe(&sb); err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.String(http.StatusOK, sb.String())
}

// PickResult contains the object hit through a pixel center
type PickResult struct {
	Hit   geometry.Hit
	Shape geometry.Shape
	Color core.RGB
}

// pickPixel casts a ray through the center of pixel (x, y) and returns the
// first object hit along with the traced color
func pickPixel(sc *scene.Scene, cam geometry.Camera, x, y int) PickResult {
	dx, dy := core.CenterSampler{}.Get2D()
	ray := geometry.NewViewPlane(cam).GetRay(x, y, dx, dy)

	result := PickResult{Hit: geometry.NoHit()}
	for _, shape := range sc.Shapes {
		if hit := shape.Intersect(ray); hit.Closer(result.Hit) {
			result.Hit = hit
			result.Shape = shape
		}
	}
	result.Color = renderer.NewRaytracer(sc).Trace(ray, 0)
	return result
}

// handlePick reports what is visible through one pixel of a camera
func (s *Server) handlePick(c echo.Context) error {
	query := c.Request().URL.Query()
	cameraIndex, err := parseIntParam(query, "camera", 0, 0, 1000)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	x, err := parseIntParam(query, "x", -1, 0, 1<<16)
	if err != nil || x < 0 {
		return errorJSON(c, http.StatusBadRequest, "Invalid x coordinate")
	}
	y, err := parseIntParam(query, "y", -1, 0, 1<<16)
	if err != nil || y < 0 {
		return errorJSON(c, http.StatusBadRequest, "Invalid y coordinate")
	}

	sc, err := s.requestScene(c, sceneParam(c))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid scene: "+err.Error())
	}
	defer sc.Release()
	if err := checkSceneLimits(sc); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid scene: "+err.Error())
	}

	if cameraIndex >= len(sc.Cameras) {
		return errorJSON(c, http.StatusBadRequest, "Unknown camera")
	}
	cam := sc.Cameras[cameraIndex]
	if x >= cam.HRes || y >= cam.VRes {
		return errorJSON(c, http.StatusBadRequest, "Pixel coordinates out of bounds")
	}

	result := pickPixel(sc, cam, x, y)
	color := [3]uint8{result.Color.R, result.Color.G, result.Color.B}
	if !result.Hit.IsHit() {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false, Color: color})
	}

	geometryType, geometryProps := extractGeometryInfo(result.Shape)
	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		ObjectID:     result.Shape.ID(),
		Point:        vecArray(result.Hit.Point),
		Normal:       vecArray(result.Hit.Normal),
		Distance:     result.Hit.T,
		Color:        color,
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(result.Hit.Material),
			"geometry": geometryProps,
		},
	})
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vecArray(geom.V0), vecArray(geom.V1), vecArray(geom.V2)}
		properties["normal"] = vecArray(geom.Normal())
		return "triangle", properties

	case *geometry.Mesh:
		properties["triangleCount"] = geom.TriangleCount()
		return "mesh", properties

	default:
		return "unknown", properties
	}
}

// extractMaterialInfo lists the reflectance coefficients of a material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"ambient":       vecArray(mat.Ambient),
		"diffuse":       vecArray(mat.Diffuse),
		"specular":      vecArray(mat.Specular),
		"mirror":        vecArray(mat.Mirror),
		"phongExponent": mat.PhongExponent,
		"color": fmt.Sprintf("#%02x%02x%02x",
			int(mat.Diffuse.X*255), int(mat.Diffuse.Y*255), int(mat.Diffuse.Z*255)),
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
