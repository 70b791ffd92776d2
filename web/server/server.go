package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

const (
	maxWidth   = 800
	maxSamples = 500
	maxDepth   = 100
)

// errUnknownScene is returned for scene names the server does not build.
// Scene files are not loaded over HTTP.
var errUnknownScene = errors.New("unknown scene")

// Server handles web requests for the path tracer
type Server struct {
	host string
	port int
}

// NewServer creates a new web server listening on every interface
func NewServer(port int) *Server {
	return &Server{port: port}
}

// SetHost restricts the listener to one interface, e.g. "127.0.0.1"
func (s *Server) SetHost(host string) {
	s.host = host
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return net.JoinHostPort(s.host, strconv.Itoa(s.port))
}

// Route describes one API endpoint
type Route struct {
	Path        string
	Description string
	handler     http.HandlerFunc
}

// Routes lists the API endpoints in registration order
func (s *Server) Routes() []Route {
	return []Route{
		{"/api/health", "liveness check", s.handleHealth},
		{"/api/render", "render a scene (scene, width, samples, depth, seed, format=png|json)", s.handleRender},
		{"/api/scene-config", "scene defaults and request limits (scene)", s.handleSceneConfig},
		{"/api/inspect", "describe what the center ray of a pixel hits (scene, width, seed, x, y)", s.handleInspect},
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // "default" or "random"
	Width   int    `json:"width"`   // Image width; height follows the scene's aspect ratio
	Samples int    `json:"samples"` // Samples per pixel
	Depth   int    `json:"depth"`   // Maximum bounce depth
	Seed    int64  `json:"seed"`    // Sampler and random scene seed
	Format  string `json:"format"`  // "png" or "json"
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// RenderResponse is returned for format=json renders
type RenderResponse struct {
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// Handler returns the server's routes
func (s *Server) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	for _, route := range s.Routes() {
		mux.HandleFunc(route.Path, route.handler)
	}
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := s.Addr()
	log.Printf("Starting web server on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender renders one frame synchronously and returns it as PNG or JSON
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene, req.Seed, req.Width)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	consoleChan := make(chan ConsoleMessage, consoleBufferSize)
	logger := NewWebLogger(renderID, consoleChan)

	width, height := sceneObj.CameraConfig.Width, sceneObj.CameraConfig.Height()
	logger.Printf("Rendering %s at %dx%d with %d samples\n", req.Scene, width, height, req.Samples)

	raytracer := renderer.NewRaytracer(sceneObj, width, height)
	raytracer.SetSamplingConfig(renderer.SamplingConfig{
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.Depth,
		Gamma:           sceneObj.SamplingConfig.Gamma,
	})
	raytracer.SetSampler(core.NewSeededSampler(req.Seed))
	raytracer.SetLogger(logger)

	frame, stats := raytracer.Render()

	if req.Format == "png" {
		var buf bytes.Buffer
		if err := png.Encode(&buf, frame); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
		return
	}

	imageData, err := s.imageToBase64PNG(frame)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, RenderResponse{
		Scene:     req.Scene,
		Width:     width,
		Height:    height,
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:    stats.TotalPixels,
			TotalSamples:   stats.TotalSamples,
			AverageSamples: stats.AverageSamples,
			ElapsedMs:      stats.Duration.Milliseconds(),
		},
		Console: drainConsole(consoleChan),
	})
}

// parseRenderRequest parses and validates query parameters
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "default", Format: "png"}

	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}
	switch format := values.Get("format"); format {
	case "", "png":
	case "json":
		req.Format = format
	default:
		return nil, fmt.Errorf("format must be png or json, got: %s", format)
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 200, 1, maxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 10, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 10, 1, maxDepth); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 1, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	// Performance warning
	if req.Width > 400 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds one of the built-in scenes; each request gets its own world
func (s *Server) createScene(name string, seed int64, width int) (*scene.Scene, error) {
	switch name {
	case "default", "random":
		return scene.Create(name, seed, renderer.CameraConfig{Width: width})
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownScene, name)
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName, 1, 0)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           sceneObj.CameraConfig.Width,
			"aspectRatio":     sceneObj.CameraConfig.AspectRatio,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"gamma":           config.Gamma,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": 1, "max": maxWidth},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"depth":   map[string]int{"min": 1, "max": maxDepth},
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
