package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Geometry is anything a ray can intersect. The set is closed: Sphere and List.
type Geometry interface {
	// Hit reports whether ray intersects the surface with tMin < t < tMax.
	// On a hit the nearest qualifying intersection is written to rec; on a miss rec is left untouched.
	Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool

	isGeometry()
}
