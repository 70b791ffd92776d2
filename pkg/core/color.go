package core

import (
	"fmt"
	"image/color"
	"io"
	"math"
)

// Color is a linear RGB triple. Channels are unbounded until encoded.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromVec3 reinterprets a vector as a color
func ColorFromVec3(v Vec3) Color {
	return Color{R: v.X, G: v.Y, B: v.Z}
}

// ColorFromRGBA converts an 8-bit color (such as an entry of x/image/colornames) to [0,1] channels
func ColorFromRGBA(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{
		R: float64(r) / 65535.0,
		G: float64(g) / 65535.0,
		B: float64(b) / 65535.0,
	}
}

// Add returns the channel-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the channel-wise difference
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Multiply scales every channel
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the component-wise product, used to apply attenuation
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Divide divides every channel by a scalar
func (c Color) Divide(scalar float64) Color {
	return Color{c.R / scalar, c.G / scalar, c.B / scalar}
}

// DivideColor returns the component-wise quotient
func (c Color) DivideColor(other Color) Color {
	return Color{c.R / other.R, c.G / other.G, c.B / other.B}
}

// Encode averages an accumulated sample sum, gamma corrects it and quantizes it to 8 bits.
// Averaging happens before gamma correction.
func (c Color) Encode(samplesPerPixel int, gamma float64) color.RGBA {
	avg := c.Multiply(1.0 / float64(samplesPerPixel))
	invGamma := 1.0 / gamma
	return color.RGBA{
		R: quantize(math.Pow(avg.R, invGamma)),
		G: quantize(math.Pow(avg.G, invGamma)),
		B: quantize(math.Pow(avg.B, invGamma)),
		A: 255,
	}
}

// Write emits the encoded color as a "R G B" text line
func (c Color) Write(w io.Writer, samplesPerPixel int, gamma float64) error {
	rgba := c.Encode(samplesPerPixel, gamma)
	_, err := fmt.Fprintf(w, "%d %d %d\n", rgba.R, rgba.G, rgba.B)
	return err
}

func quantize(v float64) uint8 {
	// NaN fails both comparisons and lands on 0
	if !(v > 0) {
		return 0
	}
	return uint8(256 * math.Min(v, 0.999))
}
