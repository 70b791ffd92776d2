package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultMaterial absorbs every ray. Geometry built without a material uses it.
type DefaultMaterial struct{}

// Scatter always reports absorption
func (DefaultMaterial) Scatter(core.Ray, HitRecord, core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

func (DefaultMaterial) isMaterial() {}

// OrDefault returns m, or DefaultMaterial when m is nil
func OrDefault(m Material) Material {
	if m == nil {
		return DefaultMaterial{}
	}
	return m
}
