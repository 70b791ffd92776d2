package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HitThreshold narrows the accepted interval at both ends to suppress shadow acne
// from the bounce that produced the ray.
const HitThreshold = 0.002

// Sphere represents a sphere shape. A negative radius flips the surface inside out.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere. A nil material is replaced by material.DefaultMaterial.
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material.OrDefault(mat),
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	lo, hi := tMin+HitThreshold, tMax-HitThreshold
	root := (-halfB - sqrtD) / a
	if root < lo || root > hi {
		root = (-halfB + sqrtD) / a
		if root < lo || root > hi {
			return false
		}
	}

	rec.T = root
	rec.Point = ray.At(root)
	// Dividing by the radius keeps the normal unit length
	outwardNormal := rec.Point.Subtract(s.Center).Divide(s.Radius)
	rec.SetFaceNormal(ray, outwardNormal)
	rec.Material = s.Material
	return true
}

func (*Sphere) isGeometry() {}
