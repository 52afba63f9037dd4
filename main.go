package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/watch"
)

// scenesDir is searched for <name>.xml when a scene name is not built in
const scenesDir = "scenes"

// options holds the parsed command line
type options struct {
	Scene   string
	AA      int
	Workers int
	Seed    int64
	OutDir  string
	Format  string
	Scale   float64
	Print   bool
	Watch   bool
	S3      bool
	EnvFile string
	Help    bool

	set map[string]bool // Flags given explicitly
}

// parseOptions parses flags followed by the optional positional form
// "<scene.xml> [aa]"
func parseOptions(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{set: map[string]bool{}}

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.Scene, "scene", "default", "Scene: 'default', 'cornell', a name from scenes/ or a path to an .xml file")
	fs.IntVar(&opts.AA, "aa", 1, "Anti-aliasing samples per pixel")
	fs.IntVar(&opts.Workers, "workers", 0, "Number of scan-line workers (0 = number of CPUs)")
	fs.Int64Var(&opts.Seed, "seed", 42, "Base seed for sample jitter")
	fs.StringVar(&opts.OutDir, "out", "output", "Output directory")
	fs.StringVar(&opts.Format, "format", "", "Output format: ppm, png, bmp or tiff (default: from the camera's image name)")
	fs.Float64Var(&opts.Scale, "scale", 1, "Resample the rendered image by this factor")
	fs.BoolVar(&opts.Print, "print", false, "Print the parsed scene before rendering")
	fs.BoolVar(&opts.Watch, "watch", false, "Re-render whenever the scene file changes")
	fs.BoolVar(&opts.S3, "s3", false, "Upload images to the configured S3 bucket instead of the output directory")
	fs.StringVar(&opts.EnvFile, "env", ".env", "Environment file with RAYTRACER_* settings")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 2:
		aa, err := strconv.Atoi(rest[1])
		if err != nil {
			return nil, fs, fmt.Errorf("invalid anti-aliasing sample count %q", rest[1])
		}
		opts.AA = aa
		opts.set["aa"] = true
		fallthrough
	case 1:
		opts.Scene = rest[0]
		opts.set["scene"] = true
	default:
		return nil, fs, fmt.Errorf("too many arguments: %v", rest)
	}

	return opts, fs, nil
}

// apply overrides cfg with every flag given on the command line
func (o *options) apply(cfg *config.Config) {
	if o.set["aa"] {
		cfg.AntiAliasing = o.AA
	}
	if o.set["workers"] {
		cfg.Workers = o.Workers
	}
	if o.set["seed"] {
		cfg.Seed = o.Seed
	}
	if o.set["out"] {
		cfg.OutputDir = o.OutDir
	}
	if o.set["format"] {
		cfg.Format = o.Format
	}
	if o.set["scale"] {
		cfg.Scale = o.Scale
	}
}

func main() {
	opts, fs, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}

	if opts.Help {
		printHelp(fs)
		return
	}

	if err := run(opts); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options] [scene.xml [aa]]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-10s %s\n", info.ID, info.Description)
	}
	if xmlScenes, err := scene.ListXMLScenes(scenesDir); err == nil {
		for _, info := range xmlScenes {
			fmt.Printf("  %-10s %s\n", info.ID, info.FilePath)
		}
	}
	fmt.Println()
	fmt.Println("One image is written per camera to <out>/<scene>/<image name>")
}

func run(opts *options) error {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return err
	}
	opts.apply(&cfg)

	logger := renderer.NewDefaultLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sink, err := newSink(cfg, opts)
	if err != nil {
		return err
	}

	render := func(ctx context.Context) error {
		sc, err := createScene(opts.Scene)
		if err != nil {
			return err
		}
		defer sc.Release()

		if opts.Print {
			if err := sc.Describe(os.Stdout); err != nil {
				return err
			}
		}
		return renderScene(ctx, sc, cfg, sink, logger)
	}

	if err := render(ctx); err != nil {
		return err
	}

	if !opts.Watch {
		return nil
	}
	if !isSceneFile(opts.Scene) {
		return fmt.Errorf("-watch needs a scene file, got %q", opts.Scene)
	}
	logger.Printf("Watching %s for changes (Ctrl+C to stop)\n", opts.Scene)
	return watch.Watch(ctx, opts.Scene, watch.Options{Logger: logger}, render)
}

// newSink picks the image destination: S3 when requested, otherwise a
// per-scene directory under the output directory
func newSink(cfg config.Config, opts *options) (output.Sink, error) {
	if !opts.S3 {
		return output.FileSink{Dir: createOutputDir(cfg.OutputDir, opts.Scene)}, nil
	}
	if !cfg.S3.Enabled() {
		return nil, errors.New("-s3 requires RAYTRACER_S3_BUCKET to be set")
	}

	client, err := output.NewS3Client(output.S3Options{
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	})
	if err != nil {
		return nil, err
	}
	return output.S3Sink{
		Client: client,
		Bucket: cfg.S3.Bucket,
		Prefix: path.Join(cfg.S3.Prefix, sceneBaseName(opts.Scene)),
	}, nil
}

// renderScene renders every camera and saves one image per camera
func renderScene(ctx context.Context, sc *scene.Scene, cfg config.Config, sink output.Sink, logger core.Logger) error {
	logger.Printf("Scene: %d cameras, %d lights, %d primitives, max depth %d\n",
		len(sc.Cameras), len(sc.Lights), sc.GetPrimitiveCount(), sc.MaxDepth)

	r, err := renderer.NewRenderer(sc, renderer.Config{
		AntiAliasing: cfg.AntiAliasing,
		NumWorkers:   cfg.WorkerCount(),
		Seed:         cfg.Seed,
	}, logger)
	if err != nil {
		return err
	}

	return r.RenderAll(func(cam geometry.Camera, fb *renderer.Framebuffer, stats renderer.RenderStats) error {
		name, format, err := imageTarget(cam, cfg.Format)
		if err != nil {
			return err
		}

		location, err := sink.Save(ctx, name, output.Scale(fb, cfg.Scale), format)
		if err != nil {
			return err
		}
		logger.Printf("Render saved as %s (%.1f samples per pixel, %v)\n",
			location, stats.SamplesPerPixel(), stats.Duration)
		return nil
	})
}

// imageTarget returns the file name and format for a camera's image. An
// explicit format overrides the image name's extension.
func imageTarget(cam geometry.Camera, formatOverride string) (string, output.Format, error) {
	name := cam.ImageName
	if name == "" {
		name = fmt.Sprintf("camera_%d.ppm", cam.ID)
	}

	if formatOverride == "" {
		format, err := output.FormatFromName(name)
		return name, format, err
	}

	format, err := output.ParseFormat(formatOverride)
	if err != nil {
		return "", "", err
	}
	return output.WithExtension(name, format), format, nil
}

// createScene builds a built-in scene, loads an XML scene file by path, or
// loads scenes/<name>.xml
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("no scene given")
	}

	if isSceneFile(name) {
		return loaders.LoadXML(name)
	}

	sc, err := scene.NewBuiltinScene(name)
	if err == nil {
		return sc, nil
	}

	sceneFile := filepath.Join(scenesDir, name+".xml")
	if _, statErr := os.Stat(sceneFile); statErr == nil {
		return loaders.LoadXML(sceneFile)
	}
	return nil, err
}

func isSceneFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xml")
}

// sceneBaseName returns "simple" for both "simple" and "scenes/simple.xml"
func sceneBaseName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// createOutputDir returns the per-scene output directory under baseDir
func createOutputDir(baseDir, sceneName string) string {
	return filepath.Join(baseDir, sceneBaseName(sceneName))
}
