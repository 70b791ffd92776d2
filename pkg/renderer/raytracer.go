package renderer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrInvalidConfig is returned when a sampling or camera configuration cannot be rendered
var ErrInvalidConfig = errors.New("invalid render config")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	Gamma           float64 // Output gamma; channels are raised to 1/Gamma
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Gamma:           1.5,
	}
}

// Validate reports whether the config can be rendered
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: samples per pixel must be at least 1, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max depth must be at least 1, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if !(c.Gamma > 0) {
		return fmt.Errorf("%w: gamma must be positive, got %f", ErrInvalidConfig, c.Gamma)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Geometry
}

var (
	skyWhite = core.NewColor(1.0, 1.0, 1.0)
	skyBlue  = core.NewColor(0.5, 0.7, 1.0)
)

// BackgroundColor returns the sky gradient for a ray that escapes the scene
func BackgroundColor(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()

	// Map the y-component from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*white + t*blue
	return skyWhite.Multiply(1.0 - t).Add(skyBlue.Multiply(t))
}

// RayColor returns the radiance carried back along r after at most depth bounces
func RayColor(r core.Ray, world geometry.Geometry, depth int, sampler core.Sampler) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}

	var hit material.HitRecord
	if !world.Hit(r, 0, math.Inf(1), &hit) {
		return BackgroundColor(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, hit, sampler)
	if !didScatter {
		return core.Color{} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyColor(RayColor(scatter.Scattered, world, depth-1, sampler))
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene   Scene
	width   int
	height  int
	config  SamplingConfig
	sampler core.Sampler
	logger  core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	return &Raytracer{
		scene:   scene,
		width:   width,
		height:  height,
		config:  DefaultSamplingConfig(),
		sampler: core.NewSeededSampler(42), // Deterministic for testing
		logger:  core.NopLogger{},
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// SetSampler replaces the random source
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// SetLogger replaces the progress logger
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// Render traces every pixel and returns the accumulated frame.
// Rows are traced from the top of the image (t = 1) down, one sample at a time.
func (rt *Raytracer) Render() (*Frame, RenderStats) {
	startTime := time.Now()
	frame := NewFrame(rt.width, rt.height, rt.config.SamplesPerPixel, rt.config.Gamma)
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()

	// Normalized coordinates span [0,1] inclusive at the edge pixels
	sDenom := float64(max(1, rt.width-1))
	tDenom := float64(max(1, rt.height-1))
	logEvery := max(1, rt.height/10)

	for j := rt.height - 1; j >= 0; j-- {
		if j%logEvery == 0 {
			rt.logger.Printf("Scanlines remaining: %d\n", j)
		}
		for i := 0; i < rt.width; i++ {
			var colorAccum core.Color
			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				s := (float64(i) + rt.sampler.Get1D()) / sDenom
				t := (float64(j) + rt.sampler.Get1D()) / tDenom

				ray := camera.GetRay(s, t, rt.sampler)
				colorAccum = colorAccum.Add(RayColor(ray, world, rt.config.MaxDepth, rt.sampler))
			}
			frame.Set(i, rt.height-1-j, colorAccum)
		}
	}

	totalPixels := rt.width * rt.height
	stats := RenderStats{
		TotalPixels:    totalPixels,
		TotalSamples:   totalPixels * rt.config.SamplesPerPixel,
		AverageSamples: float64(rt.config.SamplesPerPixel),
		Duration:       time.Since(startTime),
	}
	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)

	return frame, stats
}
