package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PratikDhanave/vibe-events/internal/catalog"
)

func TestNormalize_Defaults(t *testing.T) {
	n, fb := Normalize(EventRecord{})

	assert.Equal(t, catalog.UntitledEvent, n.Title)
	assert.Equal(t, catalog.NoDescription, n.Description)
	assert.Equal(t, catalog.UnknownVenue, n.LocationName)
	assert.Equal(t, catalog.DefaultLatitude, n.Latitude)
	assert.Equal(t, catalog.DefaultLongitude, n.Longitude)
	assert.Equal(t, catalog.General, n.Category)
	assert.Empty(t, n.EventTime)
	assert.Equal(t, Fallbacks{Category: true, EventTime: true, Coordinates: true}, fb)
}

func TestNormalize_FullRecord(t *testing.T) {
	rec := EventRecord{
		"title":   "Jazz Concert",
		"snippet": "Live jazz",
		"type":    "Concert",
		"location": map[string]any{
			"name":      "Blue Frog",
			"latitude":  12.93,
			"longitude": "77.62",
		},
		"dates": `Sat {"when": "Sat, 8 PM"}`,
	}

	n, fb := Normalize(rec)
	assert.Equal(t, "Jazz Concert", n.Title)
	assert.Equal(t, "Live jazz", n.Description)
	assert.Equal(t, "Blue Frog", n.LocationName)
	assert.Equal(t, 12.93, n.Latitude)
	assert.Equal(t, 77.62, n.Longitude)
	assert.Equal(t, catalog.Music, n.Category)
	assert.Equal(t, "Sat, 8 PM", n.EventTime)
	assert.Equal(t, Fallbacks{}, fb)
}

func TestNormalize_TopLevelFallbacksAndMalformedValues(t *testing.T) {
	rec := EventRecord{
		"title":         "  ",
		"description":   42,
		"location":      "not an object",
		"location_name": "Cubbon Park",
		"latitude":      "north-ish",
		"longitude":     77.6,
		"date":          map[string]any{"when": "Sunday morning"},
	}

	n, fb := Normalize(rec)
	assert.Equal(t, catalog.UntitledEvent, n.Title)
	assert.Equal(t, catalog.NoDescription, n.Description)
	assert.Equal(t, "Cubbon Park", n.LocationName)
	assert.Equal(t, catalog.DefaultLatitude, n.Latitude)
	assert.Equal(t, 77.6, n.Longitude)
	assert.Equal(t, "Sunday morning", n.EventTime)
	assert.True(t, fb.Coordinates)
	assert.False(t, fb.EventTime)
}
