package mapview

import (
	"bytes"
	"html/template"

	"github.com/UnknownOlympus/meridian/internal/overlay"
)

var pageTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
    <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
    <style>
        body, html { margin: 0; padding: 0; height: 100%; }
        #map { width: 100%; height: 100%; }
    </style>
</head>
<body>
    <div id="map"></div>
    <script>
    const view = {{.View}};
    const map = L.map('map').setView(view.center, view.zoom);
    L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
        maxZoom: 19,
        attribution: '&copy; OpenStreetMap contributors'
    }).addTo(map);
    view.lines.forEach(line => {
        L.polyline(line.path, { color: line.color, weight: line.tree ? 3 : 1 }).addTo(map);
    });
    view.markers.forEach(marker => {
        const popup = document.createElement('span');
        popup.textContent = marker.label;
        L.marker(marker.at).bindPopup(popup).addTo(map);
    });
    </script>
</body>
</html>
`))

type pageData struct {
	Title string
	View  leafletView
}

type leafletView struct {
	Center  [2]float64      `json:"center"`
	Zoom    int             `json:"zoom"`
	Markers []leafletMarker `json:"markers"`
	Lines   []leafletLine   `json:"lines"`
}

type leafletMarker struct {
	At    [2]float64 `json:"at"`
	Label string     `json:"label"`
}

type leafletLine struct {
	Path  [2][2]float64 `json:"path"`
	Color string        `json:"color"`
	Tree  bool          `json:"tree"`
}

// leaflet renders a self-contained HTML page. Lines are drawn before markers so pins stay on top.
type leaflet struct{}

func (leaflet) extension() string { return "html" }

func (leaflet) encode(ov *overlay.Overlay, name string) ([]byte, error) {
	view := leafletView{
		Center:  ov.Center.LatLng(),
		Zoom:    ov.Zoom,
		Markers: make([]leafletMarker, len(ov.Markers)),
		Lines:   make([]leafletLine, len(ov.Lines)),
	}
	for i, m := range ov.Markers {
		view.Markers[i] = leafletMarker{At: m.Position.LatLng(), Label: m.Label}
	}
	for i, l := range ov.Lines {
		tree := l.Style == overlay.StyleTree
		color := ColorOther
		if tree {
			color = ColorTree
		}
		view.Lines[i] = leafletLine{Path: [2][2]float64{l.From.LatLng(), l.To.LatLng()}, Color: color, Tree: tree}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{Title: "Disaster map: " + name, View: view}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
