package output

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for an output extension with no encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format identifies an image encoding
type Format string

const (
	PPM  Format = "ppm"
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		return PPM, nil
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Encode writes the frame to w in the given format
func Encode(w io.Writer, format Format, frame *renderer.Frame) error {
	switch format {
	case PPM:
		return frame.WritePPM(w)
	case PNG:
		return png.Encode(w, frame)
	case BMP:
		return bmp.Encode(w, frame)
	case TIFF:
		return tiff.Encode(w, frame, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes the frame to path, creating parent directories as needed
func Save(path string, frame *renderer.Frame) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(file, format, frame); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return file.Close()
}
