package ingest

import (
	"math"
	"strconv"
	"strings"

	"github.com/PratikDhanave/vibe-events/internal/catalog"
)

// EventRecord is one raw result from the event search source.
// Nothing about its shape is guaranteed; use the accessors.
type EventRecord map[string]any

// str returns the first key holding a non-blank string.
func (r EventRecord) str(keys ...string) string {
	return pickStr(r, keys...)
}

// nested returns the object under key, or nil.
func (r EventRecord) nested(key string) map[string]any {
	m, _ := r[key].(map[string]any)
	return m
}

// float returns the first key holding a finite non-zero number or numeric string.
func (r EventRecord) float(keys ...string) (float64, bool) {
	return pickFloat(r, keys...)
}

// Fallbacks records which fields of a NormalizedEvent used a default.
type Fallbacks struct {
	Category    bool
	EventTime   bool
	Coordinates bool
}

// Normalize turns a raw record into a NormalizedEvent, applying defaults to
// every missing or malformed field. It never fails.
func Normalize(r EventRecord) (catalog.NormalizedEvent, Fallbacks) {
	var fb Fallbacks
	loc := r.nested("location")

	title := r.str("title")
	if title == "" {
		title = catalog.UntitledEvent
	}

	description := r.str("description", "snippet")
	if description == "" {
		description = catalog.NoDescription
	}

	locationName := pickStr(loc, "name")
	if locationName == "" {
		locationName = r.str("location_name")
	}
	if locationName == "" {
		locationName = catalog.UnknownVenue
	}

	lat, latOK := pickFloat(loc, "latitude")
	if !latOK {
		lat, latOK = r.float("latitude")
	}
	if !latOK {
		lat = catalog.DefaultLatitude
	}
	lon, lonOK := pickFloat(loc, "longitude")
	if !lonOK {
		lon, lonOK = r.float("longitude")
	}
	if !lonOK {
		lon = catalog.DefaultLongitude
	}
	fb.Coordinates = !latOK || !lonOK

	var eventTime string
	eventTime, fb.EventTime = r.when()

	var category catalog.Category
	category, fb.Category = catalog.ClassifyChecked(r.str("type"), title)

	return catalog.NormalizedEvent{
		Title:        title,
		Description:  description,
		LocationName: locationName,
		Latitude:     lat,
		Longitude:    lon,
		Category:     category,
		EventTime:    eventTime,
	}, fb
}

// when reads the display time. A "dates" string blob goes through the
// literal extractor; a structured "date" object is read directly.
func (r EventRecord) when() (string, bool) {
	if blob, ok := r["dates"].(string); ok {
		return catalog.ExtractWhenChecked(&blob)
	}
	if w := pickStr(r.nested("date"), "when"); w != "" {
		return w, false
	}
	return catalog.ExtractWhenChecked(nil)
}

// pickStr returns the first key in m holding a non-blank string.
func pickStr(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// pickFloat returns the first key in m holding a usable coordinate.
// Zero counts as absent, like any other falsy value from the source.
func pickFloat(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		var f float64
		switch v := m[k].(type) {
		case float64:
			f = v
		case int:
			f = float64(v)
		case int64:
			f = float64(v)
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				continue
			}
			f = parsed
		default:
			continue
		}
		if f != 0 && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, true
		}
	}
	return 0, false
}
