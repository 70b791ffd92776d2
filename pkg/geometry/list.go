package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// List aggregates geometries and reports the globally nearest hit among them.
// Intersection is a linear scan.
type List struct {
	Geometries []Geometry
}

// NewList creates a list holding the given geometries
func NewList(geometries ...Geometry) *List {
	return &List{Geometries: geometries}
}

// Add appends geometries to the list
func (l *List) Add(geometries ...Geometry) {
	l.Geometries = append(l.Geometries, geometries...)
}

// Clear removes every geometry
func (l *List) Clear() {
	l.Geometries = nil
}

// Len returns the number of direct members
func (l *List) Len() int {
	return len(l.Geometries)
}

// Hit tests every member, shrinking the search interval after each hit.
// Members at equal distance keep the first one processed.
func (l *List) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	return l.HitIndex(ray, tMin, tMax, rec) >= 0
}

// HitIndex is Hit that also reports which direct member was nearest, or -1 on a miss
func (l *List) HitIndex(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) int {
	var temp material.HitRecord
	nearest := -1
	closestSoFar := tMax

	for i, g := range l.Geometries {
		if g.Hit(ray, tMin, closestSoFar, &temp) {
			nearest = i
			closestSoFar = temp.T
			*rec = temp
		}
	}

	return nearest
}

func (*List) isGeometry() {}
