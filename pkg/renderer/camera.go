package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center         core.Vec3 // Camera position (eye)
	LookAt         core.Vec3 // Focal point the camera is aimed at
	Up             core.Vec3 // View-up direction
	Width          int       // Image width in pixels
	AspectRatio    float64   // Width / height ratio
	VFov           float64   // Vertical field of view in degrees
	ViewportHeight float64   // Base viewport height, scaled by the field of view
	FocalLength    float64   // Distance to the focus plane (0 = distance from Center to LookAt)
	Aperture       float64   // Lens diameter (0 = pinhole)
}

// DefaultCameraConfig returns a pinhole camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:         core.NewVec3(0, 0, 0),
		LookAt:         core.NewVec3(0, 0, -1),
		Up:             core.NewVec3(0, 1, 0),
		Width:          400,
		AspectRatio:    16.0 / 9.0,
		VFov:           90.0,
		ViewportHeight: 1.0,
		FocalLength:    1.0,
		Aperture:       0.0,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.ViewportHeight != 0 {
		result.ViewportHeight = override.ViewportHeight
	}
	if override.FocalLength != 0 {
		result.FocalLength = override.FocalLength
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	return result
}

// Height returns the image height implied by Width and AspectRatio (at least 1)
func (c CameraConfig) Height() int {
	return max(1, int(float64(c.Width)/c.AspectRatio))
}

// Validate reports whether the config describes a renderable image
func (c CameraConfig) Validate() error {
	if c.Width < 1 {
		return fmt.Errorf("%w: width must be at least 1, got %d", ErrInvalidConfig, c.Width)
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 1) {
		return fmt.Errorf("%w: aspect ratio must be positive, got %f", ErrInvalidConfig, c.AspectRatio)
	}
	if c.Center == c.LookAt {
		return fmt.Errorf("%w: camera center and look-at point coincide at %v", ErrInvalidConfig, c.Center)
	}
	return nil
}

// Camera generates rays for rendering. All fields are derived once in NewCamera.
type Camera struct {
	config          CameraConfig
	viewportHeight  float64
	viewportWidth   float64
	focalLength     float64
	lensRadius      float64
	origin          core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	horizontal      core.Vec3
	vertical        core.Vec3
	lowerLeftCorner core.Vec3
}

// NewCamera creates a thin-lens camera from the config
func NewCamera(config CameraConfig) *Camera {
	focalLength := config.FocalLength
	if focalLength == 0 {
		focalLength = config.Center.Subtract(config.LookAt).Length()
	}

	// Viewport dimensions from the field of view
	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2.0) * config.ViewportHeight
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal basis: w points backwards, away from the focal point
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(focalLength * viewportWidth)
	vertical := v.Multiply(focalLength * viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focalLength))

	return &Camera{
		config:          config,
		viewportHeight:  viewportHeight,
		viewportWidth:   viewportWidth,
		focalLength:     focalLength,
		lensRadius:      config.Aperture / 2.0,
		origin:          config.Center,
		u:               u,
		v:               v,
		w:               w,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// GetRay generates a ray for normalized image-plane coordinates (s, t) where 0 <= s,t <= 1.
// With a zero aperture the ray is deterministic and no samples are drawn.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	var offset core.Vec3
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}
	return c.rayFrom(offset, s, t)
}

// CenterRay returns the ray from the lens center through (s, t), ignoring the aperture
func (c *Camera) CenterRay(s, t float64) core.Ray {
	return c.rayFrom(core.Vec3{}, s, t)
}

func (c *Camera) rayFrom(offset core.Vec3, s, t float64) core.Ray {
	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Viewport returns the viewport dimensions before scaling by the focal length
func (c *Camera) Viewport() (width, height float64) {
	return c.viewportWidth, c.viewportHeight
}

// LensRadius returns half the aperture
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}

// FocalLength returns the resolved focal length
func (c *Camera) FocalLength() float64 {
	return c.focalLength
}

// Basis returns the camera's orthonormal basis vectors
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}
