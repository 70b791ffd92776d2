package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material decides whether light scatters off a surface and how.
// The set of materials is closed: Lambertian, Metal, Dielectric and DefaultMaterial.
type Material interface {
	// Scatter returns the scattered ray and its attenuation, or false when the surface absorbs the ray
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)

	isMaterial()
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, always facing against the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object, owned by the geometry
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
