package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AntiAliasing != 1 || cfg.Seed != 42 || cfg.Scale != 1 || cfg.Port != 8080 {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if cfg.S3.Enabled() {
		t.Error("Expected S3 to be disabled by default")
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("RAYTRACER_AA", "16")
	t.Setenv("RAYTRACER_WORKERS", "3")
	t.Setenv("RAYTRACER_SEED", "-7")
	t.Setenv("RAYTRACER_SCALE", "0.5")
	t.Setenv("RAYTRACER_FORMAT", "png")
	t.Setenv("RAYTRACER_S3_BUCKET", "renders")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AntiAliasing != 16 || cfg.Workers != 3 || cfg.Seed != -7 || cfg.Scale != 0.5 {
		t.Errorf("Environment not applied: %+v", cfg)
	}
	if cfg.Format != "png" || !cfg.S3.Enabled() || cfg.S3.Bucket != "renders" {
		t.Errorf("Environment strings not applied: %+v", cfg)
	}
	if cfg.WorkerCount() != 3 {
		t.Errorf("Expected configured worker count 3, got %d", cfg.WorkerCount())
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "RAYTRACER_AA=4\nRAYTRACER_OUTPUT_DIR=renders\nRAYTRACER_PORT=9090\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	// godotenv sets process variables; register them so they are restored
	for _, name := range []string{"RAYTRACER_AA", "RAYTRACER_OUTPUT_DIR", "RAYTRACER_PORT"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	// Variables already present take precedence over the file
	t.Setenv("RAYTRACER_PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AntiAliasing != 4 || cfg.OutputDir != "renders" {
		t.Errorf("Env file not applied: %+v", cfg)
	}
	if cfg.Port != 7070 {
		t.Errorf("Expected environment to win over the env file, got port %d", cfg.Port)
	}
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Expected a missing env file to be ignored, got %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"RAYTRACER_AA", "many"},
		{"RAYTRACER_SEED", "0x"},
		{"RAYTRACER_SCALE", "big"},
		{"RAYTRACER_PORT", "80.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.name, tt.value)
			if _, err := Load(""); err == nil {
				t.Errorf("Expected an error for %s=%s", tt.name, tt.value)
			}
		})
	}
}

func TestDetectWorkers(t *testing.T) {
	if n := DetectWorkers(); n < 1 {
		t.Errorf("Expected at least one worker, got %d", n)
	}
	if n := (Config{}).WorkerCount(); n < 1 {
		t.Errorf("Expected detected worker count, got %d", n)
	}
}
