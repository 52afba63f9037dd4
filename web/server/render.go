package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	maxSceneBytes   = 8 << 20     // Size of an uploaded XML scene
	maxRenderPixels = 2048 * 2048 // Pixels per camera the server will render
	maxRenderDepth  = 16          // Mirror recursion depth the server will trace
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene        string        // Built-in or XML scene id; ignored when a body is posted
	Camera       int           // Index into the scene's cameras
	AntiAliasing int           // Jittered samples per pixel
	Format       output.Format // Response image encoding
	Scale        float64       // Post-render resampling factor
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(c echo.Context) (*RenderRequest, error) {
	query := c.Request().URL.Query()
	req := &RenderRequest{Scene: sceneParam(c)}

	var err error
	if req.Camera, err = parseIntParam(query, "camera", 0, 0, 1000); err != nil {
		return nil, err
	}
	if req.AntiAliasing, err = parseIntParam(query, "aa", s.config.AntiAliasing, 1, 256); err != nil {
		return nil, err
	}
	if req.Scale, err = parseFloatParam(query, "scale", 1, 0.1, 4); err != nil {
		return nil, err
	}

	req.Format = output.FormatPNG
	if f := query.Get("format"); f != "" {
		if req.Format, err = output.ParseFormat(f); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// sceneParam returns the requested scene id, "default" when unset
func sceneParam(c echo.Context) string {
	if name := c.QueryParam("scene"); name != "" {
		return name
	}
	return "default"
}

// requestScene builds the scene posted in the request body, or the named
// built-in or on-disk scene when the body is empty
func (s *Server) requestScene(c echo.Context, name string) (*scene.Scene, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxSceneBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) > 0 {
		return loaders.ParseXML(bytes.NewReader(body), "")
	}

	if sc, err := scene.NewBuiltinScene(name); err == nil {
		return sc, nil
	}

	xmlScenes, err := scene.ListXMLScenes(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range xmlScenes {
		if info.ID == name {
			return loaders.LoadXML(info.FilePath)
		}
	}
	return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, name)
}

// checkSceneLimits rejects scenes too expensive to render in a request
func checkSceneLimits(sc *scene.Scene) error {
	if sc.MaxDepth > maxRenderDepth {
		return fmt.Errorf("maxraytracedepth must be at most %d, got: %d", maxRenderDepth, sc.MaxDepth)
	}
	for _, cam := range sc.Cameras {
		if cam.PixelCount() > maxRenderPixels {
			return fmt.Errorf("camera %d has %dx%d pixels, the limit is %d",
				cam.ID, cam.HRes, cam.VRes, maxRenderPixels)
		}
	}
	return nil
}

// handleRender renders one camera and responds with the encoded image
func (s *Server) handleRender(c echo.Context) error {
	req, err := s.parseRenderRequest(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	sc, err := s.requestScene(c, req.Scene)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid scene: "+err.Error())
	}
	defer sc.Release()
	if err := checkSceneLimits(sc); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid scene: "+err.Error())
	}

	if req.Camera >= len(sc.Cameras) {
		return errorJSON(c, http.StatusBadRequest,
			fmt.Sprintf("camera must be between 0 and %d, got: %d", len(sc.Cameras)-1, req.Camera))
	}
	cam := sc.Cameras[req.Camera]

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	logger := NewWebLogger(renderID, s.console)

	r, err := renderer.NewRenderer(sc, renderer.Config{
		AntiAliasing: req.AntiAliasing,
		NumWorkers:   s.config.WorkerCount(),
		Seed:         s.config.Seed,
	}, logger)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	logger.Printf("Rendering camera %d (%dx%d, %d samples per pixel)\n",
		cam.ID, cam.HRes, cam.VRes, req.AntiAliasing)
	fb, stats, err := r.RenderCamera(cam)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Render error: "+err.Error())
	}
	logger.Printf("Render completed in %v\n", stats.Duration)

	var buf bytes.Buffer
	if err := output.Encode(&buf, output.Scale(fb, req.Scale), req.Format); err != nil {
		if errors.Is(err, output.ErrUnknownFormat) {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
	}

	header := c.Response().Header()
	header.Set("X-Render-Id", renderID)
	header.Set("X-Image-Name", output.WithExtension(cam.ImageName, req.Format))
	header.Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	header.Set("X-Render-Workers", strconv.Itoa(stats.Workers))
	return c.Blob(http.StatusOK, req.Format.ContentType(), buf.Bytes())
}
