// Package mapview renders the catalog as a standalone Leaflet map page.
package mapview

import (
	"fmt"
	"html/template"
	"io"

	"github.com/PratikDhanave/vibe-events/internal/models"
)

// Marker is one circle on the map.
type Marker struct {
	Lat    float64
	Lon    float64
	Radius float64
	Popup  string
}

// Center is where the map opens.
type Center struct {
	Lat  float64
	Lon  float64
	Zoom int
}

// MarkerFor sizes the circle by popularity.
func MarkerFor(e models.Event) Marker {
	return Marker{
		Lat:    e.Latitude,
		Lon:    e.Longitude,
		Radius: 6 + float64(e.Popularity)*0.5,
		Popup:  fmt.Sprintf("%s (%s)", e.Title, e.Category),
	}
}

// Render writes the HTML page for events.
func Render(w io.Writer, center Center, events []models.Event) error {
	markers := make([]Marker, 0, len(events))
	for _, e := range events {
		markers = append(markers, MarkerFor(e))
	}
	if center.Zoom == 0 {
		center.Zoom = 12
	}
	return page.Execute(w, struct {
		Center  Center
		Markers []Marker
	}{center, markers})
}

var page = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Events map</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map("map").setView([{{.Center.Lat}}, {{.Center.Lon}}], {{.Center.Zoom}});
L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
  attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);
{{range .Markers}}L.circleMarker([{{.Lat}}, {{.Lon}}], {radius: {{.Radius}}}).bindPopup({{.Popup}}).addTo(map);
{{end}}</script>
</body>
</html>
`))
