package core

import (
	"math"
	"testing"
)

func TestVec3_Operations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, 7, 9)},
		{"subtract", b.Subtract(a), NewVec3(3, 3, 3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"divide", b.Divide(2), NewVec3(2, 2.5, 3)},
		{"multiply vec", a.MultiplyVec(b), NewVec3(4, 10, 18)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"clamp", NewVec3(-1, 0.5, 300).Clamp(0, 255), NewVec3(0, 0.5, 255)},
		{"reflect", NewVec3(1, -1, 0).Reflect(NewVec3(0, 1, 0)), NewVec3(1, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-12
			if tt.got.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if got := a.Dot(b); got != 32 {
		t.Errorf("Expected dot product 32, got %f", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	vectors := []Vec3{
		NewVec3(3, 4, 0),
		NewVec3(-1, 2, -3),
		NewVec3(1e-6, 0, 0),
		NewVec3(1e6, -1e6, 5),
	}

	for _, v := range vectors {
		n := v.Normalize()
		if math.Abs(n.Length()-1) > 1e-12 {
			t.Errorf("normalize(%v) has length %f, expected 1", v, n.Length())
		}

		nn := n.Normalize()
		if nn.Subtract(n).Length() > 1e-12 {
			t.Errorf("normalize is not idempotent for %v: %v vs %v", v, n, nn)
		}
	}
}

func TestVec3_NormalizeZeroIsNotFinite(t *testing.T) {
	if NewVec3(0, 0, 0).Normalize().IsFinite() {
		t.Error("Expected normalizing the zero vector to produce non-finite components")
	}
}

func TestRay_NormalizesDirection(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -10))

	if math.Abs(ray.Direction.Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction, got %v", ray.Direction)
	}

	point := ray.At(4)
	expected := NewVec3(0, 0, 1)
	if point.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v at t=4, got %v", expected, point)
	}
}
