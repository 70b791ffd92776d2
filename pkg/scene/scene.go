package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering.
// The world must not be modified once rendering starts.
type Scene struct {
	Name           string
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	World          *geometry.List // Objects in the scene
	SamplingConfig renderer.SamplingConfig
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Geometry {
	return s.World
}

// AddSphere adds a sphere to the world
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// GetSphereCount returns the number of top-level objects in the world
func (s *Scene) GetSphereCount() int {
	return s.World.Len()
}

// applyCameraOverrides merges the first override, if any, onto the scene's default camera
func applyCameraOverrides(defaultConfig renderer.CameraConfig, cameraOverrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(cameraOverrides) > 0 {
		return renderer.MergeCameraConfig(defaultConfig, cameraOverrides[0])
	}
	return defaultConfig
}
