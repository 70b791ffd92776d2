package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCamera_ViewportFromFieldOfView(t *testing.T) {
	config := DefaultCameraConfig()
	config.AspectRatio = 2.0
	config.VFov = 90.0
	camera := NewCamera(config)

	width, height := camera.Viewport()
	// 2 * tan(45°) * 1
	if math.Abs(height-2.0) > 1e-9 {
		t.Errorf("Expected viewport height 2, got %f", height)
	}
	if math.Abs(width-4.0) > 1e-9 {
		t.Errorf("Expected viewport width 4, got %f", width)
	}

	config.ViewportHeight = 0.5
	_, height = NewCamera(config).Viewport()
	if math.Abs(height-1.0) > 1e-9 {
		t.Errorf("Expected base viewport height to scale the result, got %f", height)
	}
}

func TestCamera_PinholeRays(t *testing.T) {
	config := DefaultCameraConfig()
	config.AspectRatio = 2.0
	camera := NewCamera(config)

	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"upper left", 0, 1, core.NewVec3(-2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler := &countingSampler{inner: core.NewSeededSampler(1)}
			ray := camera.GetRay(tt.s, tt.t, sampler)

			if ray.Origin != config.Center {
				t.Errorf("Pinhole ray should start at the camera center, got %v", ray.Origin)
			}
			if !ray.Direction.Equals(tt.direction) {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
			if sampler.draws != 0 {
				t.Errorf("Pinhole camera should not draw random samples, drew %d", sampler.draws)
			}
		})
	}
}

func TestCamera_PinholeMatchesIdealFormula(t *testing.T) {
	config := CameraConfig{
		Center:         core.NewVec3(13, 2, 3),
		LookAt:         core.NewVec3(0, 0, 0),
		Up:             core.NewVec3(0, 1, 0),
		Width:          200,
		AspectRatio:    16.0 / 9.0,
		VFov:           20,
		ViewportHeight: 1,
	}
	camera := NewCamera(config)
	u, v, w := camera.Basis()
	width, height := camera.Viewport()
	focal := camera.FocalLength()

	if math.Abs(focal-config.Center.Length()) > 1e-9 {
		t.Errorf("Expected automatic focal length %f, got %f", config.Center.Length(), focal)
	}

	horizontal := u.Multiply(focal * width)
	vertical := v.Multiply(focal * height)
	lowerLeft := config.Center.Subtract(horizontal.Multiply(0.5)).Subtract(vertical.Multiply(0.5)).Subtract(w.Multiply(focal))

	grid := core.NewSeededSampler(5)
	for i := 0; i < 100; i++ {
		s, tt := grid.Get1D(), grid.Get1D()
		first := camera.GetRay(s, tt, core.NewSeededSampler(1))
		second := camera.GetRay(s, tt, core.NewSeededSampler(2))
		if first != second {
			t.Fatalf("Pinhole rays should not depend on the random stream: %v vs %v", first, second)
		}

		ideal := lowerLeft.Add(horizontal.Multiply(s)).Add(vertical.Multiply(tt)).Subtract(config.Center)
		if first.Direction.Subtract(ideal).Length() > 1e-9 {
			t.Fatalf("Expected direction %v, got %v", ideal, first.Direction)
		}
	}
}

func TestCamera_BasisIsOrthonormal(t *testing.T) {
	config := DefaultCameraConfig()
	config.Center = core.NewVec3(3, 3, 2)
	config.LookAt = core.NewVec3(0, 0, -1)
	config.Up = core.NewVec3(0, 1, 0)
	u, v, w := NewCamera(config).Basis()

	for name, vec := range map[string]core.Vec3{"u": u, "v": v, "w": w} {
		if math.Abs(vec.Length()-1) > 1e-9 {
			t.Errorf("Basis vector %s should be unit length, got %f", name, vec.Length())
		}
	}
	if math.Abs(u.Dot(v)) > 1e-9 || math.Abs(u.Dot(w)) > 1e-9 || math.Abs(v.Dot(w)) > 1e-9 {
		t.Errorf("Basis should be orthogonal: u=%v v=%v w=%v", u, v, w)
	}

	expectedW := config.Center.Subtract(config.LookAt).Normalize()
	if !w.Equals(expectedW) {
		t.Errorf("w should point from the focal point to the eye: expected %v, got %v", expectedW, w)
	}
}

func TestCamera_DepthOfField(t *testing.T) {
	config := DefaultCameraConfig()
	config.Center = core.NewVec3(0, 0, 2)
	config.LookAt = core.NewVec3(0, 0, -1)
	config.FocalLength = 0
	config.Aperture = 0.5
	camera := NewCamera(config)

	if camera.LensRadius() != 0.25 {
		t.Errorf("Expected lens radius 0.25, got %f", camera.LensRadius())
	}

	sampler := core.NewSeededSampler(42)
	focus := camera.GetRay(0.3, 0.7, sampler).At(1)
	jittered := false

	for i := 0; i < 200; i++ {
		ray := camera.GetRay(0.3, 0.7, sampler)
		offset := ray.Origin.Subtract(config.Center)
		if offset.Length() > camera.LensRadius()+1e-9 {
			t.Fatalf("Ray origin offset %v exceeds lens radius", offset)
		}
		if math.Abs(offset.Z) > 1e-9 {
			t.Fatalf("Lens offset should lie in the image plane, got %v", offset)
		}
		if offset.Length() > 1e-6 {
			jittered = true
		}
		// Every lens sample converges on the same point of the focus plane
		if !ray.At(1).Equals(focus) {
			t.Fatalf("Expected rays to converge at %v, got %v", focus, ray.At(1))
		}
	}

	if !jittered {
		t.Error("Expected lens sampling to jitter ray origins")
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := DefaultCameraConfig()
	merged := MergeCameraConfig(base, CameraConfig{Width: 100, Aperture: 0.2, Center: core.NewVec3(1, 2, 3)})

	if merged.Width != 100 || merged.Aperture != 0.2 || merged.Center != core.NewVec3(1, 2, 3) {
		t.Errorf("Override fields not applied: %+v", merged)
	}
	if merged.VFov != base.VFov || merged.LookAt != base.LookAt || merged.AspectRatio != base.AspectRatio {
		t.Errorf("Zero override fields should keep base values: %+v", merged)
	}
}

func TestCameraConfig_Height(t *testing.T) {
	config := CameraConfig{Width: 400, AspectRatio: 16.0 / 9.0}
	if h := config.Height(); h != 225 {
		t.Errorf("Expected height 225, got %d", h)
	}
	config = CameraConfig{Width: 1, AspectRatio: 16.0 / 9.0}
	if h := config.Height(); h != 1 {
		t.Errorf("Expected minimum height 1, got %d", h)
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CameraConfig)
		wantErr bool
	}{
		{"defaults", func(*CameraConfig) {}, false},
		{"single pixel", func(c *CameraConfig) { c.Width = 1 }, false},
		{"zero width", func(c *CameraConfig) { c.Width = 0 }, true},
		{"negative width", func(c *CameraConfig) { c.Width = -5 }, true},
		{"zero aspect", func(c *CameraConfig) { c.AspectRatio = 0 }, true},
		{"negative aspect", func(c *CameraConfig) { c.AspectRatio = -1 }, true},
		{"NaN aspect", func(c *CameraConfig) { c.AspectRatio = math.NaN() }, true},
		{"look-at at the eye", func(c *CameraConfig) { c.LookAt = c.Center }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			tt.mutate(&config)
			err := config.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestCamera_CenterRayIgnoresAperture(t *testing.T) {
	config := DefaultCameraConfig()
	config.Center = core.NewVec3(13, 2, 3)
	config.LookAt = core.NewVec3(0, 0, 0)
	config.FocalLength = 0
	config.Aperture = 0.1
	camera := NewCamera(config)

	sampler := core.NewSeededSampler(7)
	for _, st := range [][2]float64{{0, 0}, {0.5, 0.5}, {0.25, 0.9}} {
		ray := camera.CenterRay(st[0], st[1])
		if ray.Origin != config.Center {
			t.Errorf("Center ray should start at the eye, got %v", ray.Origin)
		}
		// A jittered ray through the same coordinates meets it on the focus plane
		if !camera.GetRay(st[0], st[1], sampler).At(1).Equals(ray.At(1)) {
			t.Errorf("Center ray should pass through the focus point for (%v, %v)", st[0], st[1])
		}
	}

	pinhole := NewCamera(DefaultCameraConfig())
	if pinhole.CenterRay(0.3, 0.6) != pinhole.GetRay(0.3, 0.6, nil) {
		t.Error("For a pinhole camera the center ray is the camera ray")
	}
}
