package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Color // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// Lambertian surfaces never absorb.
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Offsetting the normal by a random unit vector gives a cosine-weighted direction
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// The random vector can cancel the normal almost exactly
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo,
	}, true
}

func (*Lambertian) isMaterial() {}
