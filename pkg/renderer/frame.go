package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Frame holds per-pixel sample sums in row-major order, top row first.
// It implements image.Image; pixels are averaged then gamma corrected on access.
type Frame struct {
	Width           int
	Height          int
	SamplesPerPixel int
	Gamma           float64
	Pixels          []core.Color
}

// NewFrame allocates a black frame
func NewFrame(width, height, samplesPerPixel int, gamma float64) *Frame {
	return &Frame{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		Gamma:           gamma,
		Pixels:          make([]core.Color, width*height),
	}
}

// Set stores the accumulated sample sum for pixel (x, y)
func (f *Frame) Set(x, y int, sum core.Color) {
	f.Pixels[y*f.Width+x] = sum
}

// Sum returns the accumulated sample sum for pixel (x, y)
func (f *Frame) Sum(x, y int) core.Color {
	return f.Pixels[y*f.Width+x]
}

// Average returns the mean linear color of pixel (x, y)
func (f *Frame) Average(x, y int) core.Color {
	return f.Sum(x, y).Multiply(1.0 / float64(f.SamplesPerPixel))
}

// ColorModel implements image.Image
func (f *Frame) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// At implements image.Image
func (f *Frame) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(f.Bounds()) {
		return color.RGBA{}
	}
	return f.Sum(x, y).Encode(f.SamplesPerPixel, f.Gamma)
}

// WritePPM writes the frame as a plain-text (P3) PPM image
func (f *Frame) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", f.Width, f.Height); err != nil {
		return err
	}
	for _, sum := range f.Pixels {
		if err := sum.Write(bw, f.SamplesPerPixel, f.Gamma); err != nil {
			return err
		}
	}
	return bw.Flush()
}
