package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const (
	gridExtent        = 11   // Small spheres are placed on [-gridExtent, gridExtent) in x and z
	smallSphereRadius = 0.2  // Radius of every grid sphere
	clearance         = 0.9  // Grid spheres this close to the metal showcase sphere are skipped
	diffuseChance     = 0.8  // Probability a grid sphere is Lambertian
	metalChance       = 0.95 // Cumulative probability a grid sphere is Lambertian or metal
)

// NewRandomScene creates the large scene: a grid of small random spheres around three big ones.
// The same seed always builds the same world.
func NewRandomScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	lookFrom := core.NewVec3(13, 2, 3)
	lookAt := core.NewVec3(0, 0, 0)
	defaultCameraConfig := renderer.CameraConfig{
		Center:         lookFrom,
		LookAt:         lookAt,
		Up:             core.NewVec3(0, 1, 0),
		Width:          1200,
		AspectRatio:    16.0 / 9.0,
		VFov:           60.0,
		ViewportHeight: 1.0,
		FocalLength:    lookFrom.Subtract(lookAt).Length(),
		Aperture:       0.1,
	}
	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	s := &Scene{
		Name:         "random",
		Camera:       renderer.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		World:        geometry.NewList(),
		SamplingConfig: renderer.SamplingConfig{
			SamplesPerPixel: 200,
			MaxDepth:        50,
			Gamma:           1.5,
		},
	}

	sampler := core.NewSeededSampler(seed)

	// Ground
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))

	showcase := core.NewVec3(4, smallSphereRadius, 0)
	for a := -gridExtent; a < gridExtent; a++ {
		for b := -gridExtent; b < gridExtent; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+clearance*sampler.Get1D(),
				smallSphereRadius,
				float64(b)+clearance*sampler.Get1D(),
			)

			if center.Subtract(showcase).Length() <= clearance {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < diffuseChance:
				albedo := core.ColorFromVec3(core.RandomVec3(sampler, 0, 1)).
					MultiplyColor(core.ColorFromVec3(core.RandomVec3(sampler, 0, 1)))
				mat = material.NewLambertian(albedo)
			case chooseMat < metalChance:
				albedo := core.ColorFromVec3(core.RandomVec3(sampler, 0.5, 1))
				fuzz := core.RandomRange(sampler, 0, 0.5)
				mat = material.NewMetal(albedo, fuzz)
			default:
				mat = material.NewDielectric(1.5)
			}
			s.AddSphere(center, smallSphereRadius, mat)
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0))

	return s
}
