package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestList_EmptyMisses(t *testing.T) {
	list := NewList()
	var hit material.HitRecord
	if list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0, math.Inf(1), &hit) {
		t.Error("Empty list should never report a hit")
	}
}

func TestList_NearestHitMatchesReference(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	ray := core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1))

	for trial := 0; trial < 50; trial++ {
		list := NewList()
		n := 1 + random.Intn(10)
		for i := 0; i < n; i++ {
			center := core.NewVec3(random.Float64()-0.5, random.Float64()-0.5, -20*random.Float64())
			radius := 0.6 + random.Float64()
			list.Add(NewSphere(center, radius, material.NewLambertian(core.NewColor(random.Float64(), 0, 0))))
		}

		// Reference: test every member independently and keep the minimum t
		var reference material.HitRecord
		found := false
		for _, g := range list.Geometries {
			var hit material.HitRecord
			if g.Hit(ray, 0, math.Inf(1), &hit) && (!found || hit.T < reference.T) {
				reference = hit
				found = true
			}
		}

		var got material.HitRecord
		if list.Hit(ray, 0, math.Inf(1), &got) != found {
			t.Fatalf("Trial %d: hit result disagrees with reference", trial)
		}
		if found && got != reference {
			t.Fatalf("Trial %d: expected %+v, got %+v", trial, reference, got)
		}
	}
}

func TestList_EqualDistanceKeepsFirst(t *testing.T) {
	first := material.NewLambertian(core.NewColor(1, 0, 0))
	second := material.NewLambertian(core.NewColor(0, 1, 0))
	list := NewList(
		NewSphere(core.NewVec3(0, 0, 0), 1, first),
		NewSphere(core.NewVec3(0, 0, 0), 1, second),
	)

	var hit material.HitRecord
	if !list.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), 0, math.Inf(1), &hit) {
		t.Fatal("Expected hit")
	}
	if hit.Material != material.Material(first) {
		t.Error("Equal-distance hits should keep the first member processed")
	}
}

func TestList_Nested(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5, nil)
	far := NewSphere(core.NewVec3(0, 0, -6), 0.5, nil)
	list := NewList(NewList(far), NewList(NewList(near)))

	var hit material.HitRecord
	if !list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0, math.Inf(1), &hit) {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-1.5) > 1e-9 {
		t.Errorf("Expected nearest hit at t=1.5, got %f", hit.T)
	}

	list.Clear()
	if list.Len() != 0 {
		t.Errorf("Expected empty list after Clear, got %d", list.Len())
	}
}

func TestList_HitIndex(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5, nil)
	far := NewSphere(core.NewVec3(0, 0, -5), 0.5, nil)
	aside := NewSphere(core.NewVec3(3, 0, -2), 0.5, nil)
	list := NewList(far, aside, near)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	var hit material.HitRecord
	if i := list.HitIndex(ray, 0, math.Inf(1), &hit); i != 2 {
		t.Errorf("Expected the near sphere at index 2, got %d", i)
	}
	if math.Abs(hit.T-1.5) > 1e-9 {
		t.Errorf("Expected t=1.5, got %f", hit.T)
	}

	// Starting the interval behind the near sphere leaves only the far one
	if i := list.HitIndex(ray, 3, math.Inf(1), &hit); i != 0 {
		t.Errorf("Expected the far sphere at index 0, got %d", i)
	}

	sentinel := material.HitRecord{T: -7}
	miss := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if i := list.HitIndex(miss, 0, math.Inf(1), &sentinel); i != -1 {
		t.Errorf("Expected -1 on a miss, got %d", i)
	}
	if sentinel.T != -7 {
		t.Error("A miss should leave the record untouched")
	}
}
