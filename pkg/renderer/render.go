package renderer

import (
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidSamples is returned when the anti-aliasing sample count is not positive
var ErrInvalidSamples = errors.New("anti-aliasing sample count must be positive")

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains rendering configuration
type Config struct {
	AntiAliasing int          // Jittered samples per pixel (>= 1)
	NumWorkers   int          // Number of scan-line workers (0 = use CPU count)
	Seed         int64        // Base seed for the per-worker jitter sources
	Progress     ProgressFunc // Optional; defaults to logging percentages
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		AntiAliasing: 1,
		NumWorkers:   0,
		Seed:         42,
	}
}

// Renderer renders every camera of a scene into framebuffers
type Renderer struct {
	scene     *scene.Scene
	raytracer *Raytracer
	pool      *WorkerPool
	config    Config
	logger    core.Logger
}

// NewRenderer creates a renderer for a fully built scene
func NewRenderer(s *scene.Scene, config Config, logger core.Logger) (*Renderer, error) {
	if config.AntiAliasing <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidSamples, config.AntiAliasing)
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if config.Progress == nil {
		config.Progress = LogProgress(logger)
	}

	return &Renderer{
		scene:     s,
		raytracer: NewRaytracer(s),
		pool:      NewWorkerPool(config.NumWorkers),
		config:    config,
		logger:    logger,
	}, nil
}

// Raytracer returns the trace engine used by the renderer
func (r *Renderer) Raytracer() *Raytracer {
	return r.raytracer
}

// RenderCamera renders one camera. Each worker owns a disjoint range of
// rows in the framebuffer and its own random source.
func (r *Renderer) RenderCamera(cam geometry.Camera) (*Framebuffer, RenderStats, error) {
	startTime := time.Now()

	fb := NewFramebuffer(cam.HRes, cam.VRes)
	view := geometry.NewViewPlane(cam)
	progress := newProgressTracker(cam.VRes, r.config.Progress)
	samples := r.config.AntiAliasing

	err := r.pool.Run(cam.VRes, func(worker int, rows ScanlineRange) error {
		sampler := core.NewRandomSampler(r.workerSeed(cam, worker))

		for j := rows.Start; j < rows.End; j++ {
			row := fb.Rows(j, j+1)
			for i := range row {
				row[i] = r.renderPixel(view, i, j, samples, sampler)
			}
			progress.lineDone()
		}
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		CameraID:     cam.ID,
		Width:        cam.HRes,
		Height:       cam.VRes,
		TotalPixels:  cam.PixelCount(),
		TotalSamples: cam.PixelCount() * samples,
		Workers:      len(PartitionScanlines(cam.VRes, r.pool.GetNumWorkers())),
		Duration:     time.Since(startTime),
	}
	return fb, stats, nil
}

// renderPixel averages samples jittered rays through pixel (i, j)
func (r *Renderer) renderPixel(view *geometry.ViewPlane, i, j, samples int, sampler core.Sampler) core.RGB {
	var sum core.RGBSum
	for k := 0; k < samples; k++ {
		dx, dy := sampler.Get2D()
		sum.Add(r.raytracer.Trace(view.GetRay(i, j, dx, dy), 0))
	}
	return sum.Average(samples)
}

// workerSeed derives a distinct, reproducible seed per camera and worker
func (r *Renderer) workerSeed(cam geometry.Camera, worker int) int64 {
	return r.config.Seed + int64(cam.ID)*1_000_003 + int64(worker)*7919
}

// FrameHandler receives each finished camera image
type FrameHandler func(cam geometry.Camera, fb *Framebuffer, stats RenderStats) error

// RenderAll renders the cameras one after another and hands each image to fn
func (r *Renderer) RenderAll(fn FrameHandler) error {
	for _, cam := range r.scene.Cameras {
		r.logger.Printf("Rendering camera %d (%dx%d, %d samples per pixel)\n",
			cam.ID, cam.HRes, cam.VRes, r.config.AntiAliasing)

		fb, stats, err := r.RenderCamera(cam)
		if err != nil {
			return fmt.Errorf("camera %d: %w", cam.ID, err)
		}

		r.logger.Printf("Camera %d rendered in %v with %d workers\n", cam.ID, stats.Duration, stats.Workers)

		if err := fn(cam, fb, stats); err != nil {
			return fmt.Errorf("camera %d: %w", cam.ID, err)
		}
	}
	return nil
}
