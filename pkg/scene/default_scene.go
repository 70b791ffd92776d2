package scene

import (
	"golang.org/x/image/colornames"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates a small demo scene: a ground sphere and three spheres in a row
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:         core.NewVec3(0, 0, 0),
		LookAt:         core.NewVec3(0, 0, -1),
		Up:             core.NewVec3(0, 1, 0),
		Width:          400,
		AspectRatio:    16.0 / 9.0,
		VFov:           90.0,
		ViewportHeight: 1.0,
		FocalLength:    1.0,
		Aperture:       0.0, // Pinhole
	}
	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	s := &Scene{
		Name:           "default",
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewList(),
		SamplingConfig: renderer.DefaultSamplingConfig(),
	}

	// Create materials
	ground := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.ColorFromRGBA(colornames.Steelblue))
	left := material.NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.3)
	right := material.NewMetal(core.ColorFromRGBA(colornames.Goldenrod), 1.0)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, center)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, left)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, right)

	return s
}
