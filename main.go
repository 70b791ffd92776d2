package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneType string
	Seed      int64
	Width     int
	Samples   int
	MaxDepth  int
	Gamma     float64
	Output    string
}

func main() {
	config := parseFlags()

	if err := run(config); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func parseFlags() Config {
	sceneType := flag.String("scene", "default", "Scene: 'default', 'random' or a path to a .json scene file")
	seed := flag.Int64("seed", 42, "Random seed for sampling and the random scene")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	depth := flag.Int("depth", 0, "Maximum ray bounce depth (0 = scene default)")
	gamma := flag.Float64("gamma", 0, "Output gamma (0 = scene default)")
	out := flag.String("out", "", "Output file (.ppm, .png, .bmp, .tif); default output/<scene>/render_<timestamp>.png")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		showHelp()
		os.Exit(0)
	}

	return Config{
		SceneType: *sceneType,
		Seed:      *seed,
		Width:     *width,
		Samples:   *samples,
		MaxDepth:  *depth,
		Gamma:     *gamma,
		Output:    *out,
	}
}

func showHelp() {
	fmt.Println("Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	fmt.Println("  default - Ground sphere with three spheres in a row")
	fmt.Println("  random  - Grid of random small spheres around three large ones")
	fmt.Println("  *.json  - Scene description file")
}

func run(config Config) error {
	log.Printf("Starting path tracer...")

	selectedScene, err := createScene(config.SceneType, config.Seed, config.Width)
	if err != nil {
		return err
	}

	if err := selectedScene.CameraConfig.Validate(); err != nil {
		return err
	}
	samplingConfig := applySamplingOverrides(selectedScene.SamplingConfig, config)
	if err := samplingConfig.Validate(); err != nil {
		return err
	}

	width, height := selectedScene.CameraConfig.Width, selectedScene.CameraConfig.Height()
	log.Printf("Rendering %s scene at %dx%d, %d samples, depth %d",
		selectedScene.Name, width, height, samplingConfig.SamplesPerPixel, samplingConfig.MaxDepth)

	raytracer := renderer.NewRaytracer(selectedScene, width, height)
	raytracer.SetSamplingConfig(samplingConfig)
	raytracer.SetSampler(core.NewSeededSampler(config.Seed))
	raytracer.SetLogger(renderer.NewDefaultLogger())

	frame, stats := raytracer.Render()
	log.Printf("Render completed in %v (%d pixels, %.0f samples per pixel)",
		stats.Duration, stats.TotalPixels, stats.AverageSamples)

	filename := config.Output
	if filename == "" {
		filename = defaultOutputPath(selectedScene.Name, time.Now())
	}
	if err := output.Save(filename, frame); err != nil {
		return err
	}

	log.Printf("Render saved as %s", filename)
	return nil
}

// createScene creates a scene by name with an optional width override
func createScene(sceneType string, seed int64, width int) (*scene.Scene, error) {
	return scene.Create(sceneType, seed, renderer.CameraConfig{Width: width})
}

// applySamplingOverrides replaces every sampling value given on the command line
func applySamplingOverrides(base renderer.SamplingConfig, config Config) renderer.SamplingConfig {
	if config.Samples != 0 {
		base.SamplesPerPixel = config.Samples
	}
	if config.MaxDepth != 0 {
		base.MaxDepth = config.MaxDepth
	}
	if config.Gamma != 0 {
		base.Gamma = config.Gamma
	}
	return base
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", timestamp))
}
