package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/cpu"
)

// EnvPrefix is prepended to every environment variable read by Load
const EnvPrefix = "RAYTRACER_"

// S3Config holds the settings for uploading renders to S3
type S3Config struct {
	Bucket    string
	Prefix    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// Enabled reports whether a bucket has been configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Config holds run-wide settings shared by the CLI and the web server
type Config struct {
	AntiAliasing int     // Jittered samples per pixel
	Workers      int     // Scan-line workers, 0 = detect
	Seed         int64   // Base jitter seed
	OutputDir    string  // Directory for rendered images
	Format       string  // Output format override; empty uses the camera's image name
	Scale        float64 // Post-render resampling factor
	Port         int     // HTTP port for the web server
	S3           S3Config
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		AntiAliasing: 1,
		Workers:      0,
		Seed:         42,
		OutputDir:    "output",
		Scale:        1,
		Port:         8080,
		S3:           S3Config{Region: "us-east-1"},
	}
}

// Load reads envFile (if it exists) into the process environment and then
// applies RAYTRACER_* variables on top of the defaults. Variables already
// set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	var errs []error
	intVar(&cfg.AntiAliasing, "AA", &errs)
	intVar(&cfg.Workers, "WORKERS", &errs)
	intVar(&cfg.Port, "PORT", &errs)
	if v, ok := lookup("SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		}
		cfg.Seed = seed
	}
	if v, ok := lookup("SCALE"); ok {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSCALE: %w", EnvPrefix, err))
		}
		cfg.Scale = scale
	}
	stringVar(&cfg.OutputDir, "OUTPUT_DIR")
	stringVar(&cfg.Format, "FORMAT")
	stringVar(&cfg.S3.Bucket, "S3_BUCKET")
	stringVar(&cfg.S3.Prefix, "S3_PREFIX")
	stringVar(&cfg.S3.Endpoint, "S3_ENDPOINT")
	stringVar(&cfg.S3.Region, "S3_REGION")
	stringVar(&cfg.S3.AccessKey, "S3_ACCESS_KEY")
	stringVar(&cfg.S3.SecretKey, "S3_SECRET_KEY")

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	return v, ok && v != ""
}

func stringVar(dst *string, name string) {
	if v, ok := lookup(name); ok {
		*dst = v
	}
}

func intVar(dst *int, name string, errs *[]error) {
	v, ok := lookup(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
		return
	}
	*dst = n
}

// DetectWorkers returns the number of logical CPUs, falling back to
// runtime.NumCPU when the system query fails
func DetectWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// WorkerCount returns the configured worker count, detecting it when unset
func (c Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return DetectWorkers()
}
