package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

func colorHex(c core.Color) string {
	clamp := func(v float64) int { return int(math.Max(0, math.Min(1, v)) * 255) }
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))
}

// extractMaterialInfo describes a material with type assertions
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.R, m.Albedo.G, m.Albedo.B}
		properties["color"] = colorHex(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.R, m.Albedo.G, m.Albedo.B}
		properties["color"] = colorHex(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case material.DefaultMaterial:
		properties["color"] = "#000000"
		return "default", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo describes a geometry
func (s *Server) extractGeometryInfo(g geometry.Geometry) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := g.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.List:
		properties["count"] = geom.Len()
		return "list", properties

	default:
		return "unknown", properties
	}
}

// InspectResult holds the nearest hit along an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord material.HitRecord
	Geometry  geometry.Geometry // Top-level world entry that was hit
}

// inspectPixel casts the lens-center ray through the center of pixel (x, y), y=0 being the top row.
// The aperture is ignored so the result is the same for pinhole and thin-lens cameras.
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	s := (float64(pixelX) + 0.5) / float64(max(1, width-1))
	t := (float64(height-1-pixelY) + 0.5) / float64(max(1, height-1))
	ray := sceneObj.Camera.CenterRay(s, t)

	var rec material.HitRecord
	i := sceneObj.World.HitIndex(ray, 0, math.Inf(1), &rec)
	if i < 0 {
		return InspectResult{}
	}
	return InspectResult{Hit: true, HitRecord: rec, Geometry: sceneObj.World.Geometries[i]}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}
	width, err := parseIntParam(query, "width", 200, 1, maxWidth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}
	seed, err := parseIntParam(query, "seed", 1, 0, 1<<31-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(sceneName, int64(seed), width)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	height := sceneObj.CameraConfig.Height()

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, width, height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := s.extractGeometryInfo(result.Geometry)

	rec := result.HitRecord
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{rec.Point.X, rec.Point.Y, rec.Point.Z},
		Normal:       [3]float64{rec.Normal.X, rec.Normal.Y, rec.Normal.Z},
		Distance:     rec.T,
		FrontFace:    rec.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
