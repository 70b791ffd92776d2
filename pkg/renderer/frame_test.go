package renderer

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestFrame_ImplementsImage(t *testing.T) {
	var img image.Image = NewFrame(3, 2, 4, 1)
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("Unexpected bounds %v", img.Bounds())
	}
	if img.ColorModel() != color.RGBAModel {
		t.Error("Expected RGBA color model")
	}
}

func TestFrame_AtAveragesThenGammaCorrects(t *testing.T) {
	frame := NewFrame(2, 1, 4, 2)
	frame.Set(0, 0, core.NewColor(1, 1, 1)) // average 0.25, gamma 2 -> 0.5
	frame.Set(1, 0, core.NewColor(8, 0, 0)) // average 2, clamped

	if got := frame.At(0, 0); got != (color.RGBA{128, 128, 128, 255}) {
		t.Errorf("Expected mid gray, got %v", got)
	}
	if got := frame.At(1, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Expected saturated red, got %v", got)
	}
	if got := frame.At(5, 5); got != (color.RGBA{}) {
		t.Errorf("Out of bounds pixel should be transparent, got %v", got)
	}
	assertColorNear(t, core.NewColor(2, 0, 0), frame.Average(1, 0), 1e-12)
}

func TestFrame_WritePPM(t *testing.T) {
	frame := NewFrame(2, 2, 1, 1)
	frame.Set(0, 0, core.NewColor(1, 0, 0))
	frame.Set(1, 0, core.NewColor(0, 1, 0))
	frame.Set(0, 1, core.NewColor(0, 0, 1))
	frame.Set(1, 1, core.NewColor(0.5, 0.5, 0.5))

	var buf bytes.Buffer
	if err := frame.WritePPM(&buf); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n128 128 128\n"
	if buf.String() != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, buf.String())
	}
}
