package mapview

import (
	"encoding/json"

	"github.com/UnknownOlympus/meridian/internal/overlay"
)

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON feature with free-form properties.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry holds either a Point ([lon, lat]) or a LineString ([[lon, lat], ...]).
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// geoJSON renders points for markers and line strings for edges.
type geoJSON struct{}

func (geoJSON) extension() string { return "geojson" }

func (geoJSON) encode(ov *overlay.Overlay, name string) ([]byte, error) {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(ov.Markers)+len(ov.Lines)),
	}

	for _, m := range ov.Markers {
		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   Geometry{Type: "Point", Coordinates: m.Position.LonLat()},
			Properties: map[string]any{"id": m.ID, "label": m.Label, "dataset": name},
		})
	}

	for _, l := range ov.Lines {
		color := ColorOther
		if l.Style == overlay.StyleTree {
			color = ColorTree
		}
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: Geometry{Type: "LineString", Coordinates: [][2]float64{l.From.LonLat(), l.To.LonLat()}},
			Properties: map[string]any{
				"from":   l.FromID,
				"to":     l.ToID,
				"weight": l.Weight,
				"style":  string(l.Style),
				"stroke": color,
			},
		})
	}

	return json.MarshalIndent(fc, "", "  ")
}
