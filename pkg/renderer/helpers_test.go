package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// testScene implements Scene for testing
type testScene struct {
	camera *Camera
	world  geometry.Geometry
}

func (s testScene) GetCamera() *Camera          { return s.camera }
func (s testScene) GetWorld() geometry.Geometry { return s.world }

// countingSampler counts draws from an underlying sampler
type countingSampler struct {
	inner core.Sampler
	draws int
}

func (c *countingSampler) Get1D() float64   { c.draws++; return c.inner.Get1D() }
func (c *countingSampler) Get2D() core.Vec2 { c.draws++; return c.inner.Get2D() }
func (c *countingSampler) Get3D() core.Vec3 { c.draws++; return c.inner.Get3D() }

func assertColorNear(t *testing.T, expected, actual core.Color, tolerance float64) {
	t.Helper()
	if math.Abs(expected.R-actual.R) > tolerance ||
		math.Abs(expected.G-actual.G) > tolerance ||
		math.Abs(expected.B-actual.B) > tolerance {
		t.Errorf("Expected color %v, got %v (tolerance %g)", expected, actual, tolerance)
	}
}
