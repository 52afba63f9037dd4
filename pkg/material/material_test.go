package material

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestMaterial_IsMirror(t *testing.T) {
	tests := []struct {
		name     string
		material Material
		expected bool
	}{
		{"diffuse only", NewDiffuse(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.5, 0.5, 0.5)), false},
		{"full mirror", NewMirror(core.Vec3{}, core.NewVec3(1, 1, 1)), true},
		{"single channel mirror", Material{Mirror: core.NewVec3(0, 0, 0.2)}, true},
		{"negative mirror", Material{Mirror: core.NewVec3(-1, 0, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.material.IsMirror(); got != tt.expected {
				t.Errorf("Expected IsMirror=%v, got %v", tt.expected, got)
			}
		})
	}
}
