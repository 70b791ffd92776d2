package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene name is neither built in nor a JSON file
var ErrUnknownScene = errors.New("unknown scene")

// Create builds a scene by name: "default", "random" or a path ending in .json.
// The seed only affects the random scene.
func Create(name string, seed int64, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	switch {
	case name == "default":
		return NewDefaultScene(cameraOverrides...), nil
	case name == "random":
		return NewRandomScene(seed, cameraOverrides...), nil
	case strings.HasSuffix(strings.ToLower(name), ".json"):
		s, err := LoadFile(name)
		if err != nil {
			return nil, err
		}
		if len(cameraOverrides) > 0 {
			s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, cameraOverrides[0])
			s.Camera = renderer.NewCamera(s.CameraConfig)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
}
