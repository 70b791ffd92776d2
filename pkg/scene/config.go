package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var (
	// ErrUnknownMaterial is returned for a material type the loader does not know
	ErrUnknownMaterial = errors.New("unknown material type")
	// ErrUnknownColor is returned for a color name missing from x/image/colornames
	ErrUnknownColor = errors.New("unknown color name")
)

const defaultRefractionIndex = 1.5 // Glass

// Vec3Cfg is a point or direction written as [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) vec3() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

// ColorCfg is a color written as [r, g, b] in [0,1] or as a name such as "steelblue"
type ColorCfg struct {
	core.Color
}

// UnmarshalJSON accepts either an RGB triple or a color name
func (c *ColorCfg) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		rgba, ok := colornames.Map[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownColor, name)
		}
		c.Color = core.ColorFromRGBA(rgba)
		return nil
	}

	var rgb [3]float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be [r,g,b] or a name: %w", err)
	}
	c.Color = core.NewColor(rgb[0], rgb[1], rgb[2])
	return nil
}

// CameraCfg mirrors renderer.CameraConfig. Absent fields keep the default camera's value,
// except the focal length, which falls back to the Center to LookAt distance.
type CameraCfg struct {
	Center         *Vec3Cfg `json:"center,omitempty"`
	LookAt         *Vec3Cfg `json:"lookAt,omitempty"`
	Up             *Vec3Cfg `json:"up,omitempty"`
	Width          *int     `json:"width,omitempty"`
	AspectRatio    *float64 `json:"aspectRatio,omitempty"`
	VFov           *float64 `json:"vfov,omitempty"`
	ViewportHeight *float64 `json:"viewportHeight,omitempty"`
	FocalLength    *float64 `json:"focalLength,omitempty"`
	Aperture       *float64 `json:"aperture,omitempty"`
}

// apply overwrites every field present in the file
func (c CameraCfg) apply(config renderer.CameraConfig) renderer.CameraConfig {
	if c.Center != nil {
		config.Center = c.Center.vec3()
	}
	if c.LookAt != nil {
		config.LookAt = c.LookAt.vec3()
	}
	if c.Up != nil {
		config.Up = c.Up.vec3()
	}
	if c.Width != nil {
		config.Width = *c.Width
	}
	if c.AspectRatio != nil {
		config.AspectRatio = *c.AspectRatio
	}
	if c.VFov != nil {
		config.VFov = *c.VFov
	}
	if c.ViewportHeight != nil {
		config.ViewportHeight = *c.ViewportHeight
	}
	config.FocalLength = 0 // Resolved by renderer.NewCamera
	if c.FocalLength != nil {
		config.FocalLength = *c.FocalLength
	}
	if c.Aperture != nil {
		config.Aperture = *c.Aperture
	}
	return config
}

// SamplingCfg overrides the default sampling configuration
type SamplingCfg struct {
	SamplesPerPixel int     `json:"samplesPerPixel,omitempty"`
	MaxDepth        int     `json:"maxDepth,omitempty"`
	Gamma           float64 `json:"gamma,omitempty"`
}

// MaterialCfg describes one material. Type is lambertian, metal or dielectric.
type MaterialCfg struct {
	Type            string   `json:"type"`
	Albedo          ColorCfg `json:"albedo"`
	Fuzz            float64  `json:"fuzz,omitempty"`
	RefractionIndex float64  `json:"refractionIndex,omitempty"`
}

// SphereCfg describes one sphere. A missing material absorbs all light.
type SphereCfg struct {
	Center   Vec3Cfg      `json:"center"`
	Radius   float64      `json:"radius"`
	Material *MaterialCfg `json:"material,omitempty"`
}

// Config is the on-disk scene description
type Config struct {
	Name     string      `json:"name,omitempty"`
	Camera   CameraCfg   `json:"camera"`
	Sampling SamplingCfg `json:"sampling"`
	Spheres  []SphereCfg `json:"spheres"`
}

// LoadFile reads a JSON scene description from disk
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Load decodes a JSON scene description
func Load(r io.Reader) (*Scene, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return cfg.Build()
}

// Build assembles the scene described by the config
func (cfg Config) Build() (*Scene, error) {
	cameraConfig := cfg.Camera.apply(renderer.DefaultCameraConfig())
	if err := cameraConfig.Validate(); err != nil {
		return nil, err
	}

	samplingConfig := renderer.DefaultSamplingConfig()
	if cfg.Sampling.SamplesPerPixel != 0 {
		samplingConfig.SamplesPerPixel = cfg.Sampling.SamplesPerPixel
	}
	if cfg.Sampling.MaxDepth != 0 {
		samplingConfig.MaxDepth = cfg.Sampling.MaxDepth
	}
	if cfg.Sampling.Gamma != 0 {
		samplingConfig.Gamma = cfg.Sampling.Gamma
	}
	if err := samplingConfig.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		Name:           cfg.Name,
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewList(),
		SamplingConfig: samplingConfig,
	}

	for i, sphere := range cfg.Spheres {
		mat, err := sphere.Material.build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.AddSphere(sphere.Center.vec3(), sphere.Radius, mat)
	}

	return s, nil
}

// build creates the material; a nil config yields nil, which spheres replace with DefaultMaterial
func (m *MaterialCfg) build() (material.Material, error) {
	if m == nil {
		return nil, nil
	}

	switch strings.ToLower(m.Type) {
	case "lambertian":
		return material.NewLambertian(m.Albedo.Color), nil
	case "metal":
		return material.NewMetal(m.Albedo.Color, m.Fuzz), nil
	case "dielectric":
		if m.RefractionIndex == 0 {
			return material.NewDielectric(defaultRefractionIndex), nil
		}
		return material.NewDielectric(m.RefractionIndex), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, m.Type)
	}
}
