package core

import "math/rand"

// Sampler supplies sub-pixel offsets in [0, 1)
type Sampler interface {
	Get2D() (float64, float64)
}

// RandomSampler wraps a standard Go random generator. It is not safe for
// concurrent use; each render worker owns one.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler seeded with seed
func NewRandomSampler(seed int64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewSource(seed))}
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() (float64, float64) {
	return r.random.Float64(), r.random.Float64()
}

// CenterSampler always returns the pixel center
type CenterSampler struct{}

// Get2D returns the pixel center offset (0.5, 0.5)
func (CenterSampler) Get2D() (float64, float64) {
	return 0.5, 0.5
}
