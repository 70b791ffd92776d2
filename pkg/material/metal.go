package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Color // Metal color
	Fuzz   float64    // 0.0 = perfect mirror, intended range [0, 1]
}

// NewMetal creates a new metal material. Fuzz is stored as given.
func NewMetal(albedo core.Color, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Calculate perfect reflection direction
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)

	// Add fuzziness by perturbing the reflection direction
	if m.Fuzz != 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	}

	result := ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: m.Albedo,
	}

	// Fuzzed reflections that dip below the surface are absorbed
	return result, reflected.Dot(hit.Normal) > 0
}

func (*Metal) isMaterial() {}
