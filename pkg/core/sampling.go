package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic random stream
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomRange returns a random float64 in [lo, hi)
func RandomRange(sampler Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// RandomVec3 returns a vector with each component drawn from [lo, hi)
func RandomVec3(sampler Sampler, lo, hi float64) Vec3 {
	s := sampler.Get3D()
	return NewVec3(lo+(hi-lo)*s.X, lo+(hi-lo)*s.Y, lo+(hi-lo)*s.Z)
}

// RandomInUnitSphere generates a random point inside the unit sphere
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := RandomVec3(sampler, -1, 1)
		// Accept if inside unit sphere
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector generates a uniformly distributed direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomInUnitSphere(sampler)
		// Points too close to the center lose precision when normalized
		if p.LengthSquared() > 1e-160 {
			return p.Normalize()
		}
	}
}

// RandomInUnitDisk generates a random point in the z=0 unit disk (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		s := sampler.Get2D()
		// Generate random point in [-1,1] x [-1,1] square
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		// Accept if inside unit disk
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
