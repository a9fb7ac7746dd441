package renderer

import (
	"encoding/json"
	"errors"
	"html/template"
	"os"
	"path/filepath"

	"github.com/jalur-dev/jalur/pkg/geo"
)

// ErrEmptyRoute means there are no coordinates to draw.
var ErrEmptyRoute = errors.New("empty route coordinates")

// MapRenderer writes a standalone leaflet page with the route polyline and
// endpoint markers, the visual artifact handed back to the browser.
type MapRenderer struct {
	tmpl *template.Template
}

func NewMapRenderer() *MapRenderer {
	return &MapRenderer{
		tmpl: template.Must(template.New("routemap").Parse(mapTemplate)),
	}
}

type mapData struct {
	CenterLat float64
	CenterLon float64
	Zoom      int
	Coords    template.JS
	ALabel    string
	BLabel    string
}

// Render writes the map artifact for coords to outPath, labeling the first
// and last coordinate with the caller's A/B names.
func (mr *MapRenderer) Render(coords []geo.Coordinate, aLabel, bLabel, outPath string) error {
	if len(coords) == 0 {
		return ErrEmptyRoute
	}

	flat := make([][]float64, len(coords))
	for i, c := range coords {
		flat[i] = []float64{c.Lat, c.Lon}
	}
	coordsJSON, err := json.Marshal(flat)
	if err != nil {
		return err
	}

	center := geo.CenterOf(coords)
	data := mapData{
		CenterLat: center.Lat,
		CenterLon: center.Lon,
		Zoom:      zoomFor(geo.SpanMeters(coords)),
		Coords:    template.JS(coordsJSON),
		ALabel:    aLabel,
		BLabel:    bLabel,
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return mr.tmpl.Execute(f, data)
}

// zoomFor picks a leaflet zoom level that keeps the whole route on screen.
func zoomFor(spanMeters float64) int {
	zoom := 16
	for span := 600.0; span < spanMeters && zoom > 3; span *= 2 {
		zoom--
	}
	return zoom
}

const mapTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
<title>Route Map</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map', { scrollWheelZoom: true }).setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
	maxZoom: 19,
	attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
L.control.scale().addTo(map);

var coords = {{.Coords}};
L.polyline(coords, { weight: 6, opacity: 0.8 }).addTo(map);
L.marker(coords[0]).addTo(map).bindTooltip("Point A").bindPopup({{.ALabel}});
L.marker(coords[coords.length - 1]).addTo(map).bindTooltip("Point B").bindPopup({{.BLabel}});
</script>
</body>
</html>
`
