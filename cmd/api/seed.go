package main

import "github.com/PratikDhanave/vibe-events/internal/models"

// sampleEvents gives a fresh database something to show before the first ingestion.
var sampleEvents = []models.Event{
	{
		Title:        "Indie Art Night",
		Description:  "Local artists showcase their latest work.",
		LocationName: "Church Street Social",
		EventTime:    "Fri, 7 PM",
		Latitude:     12.9716,
		Longitude:    77.5946,
		Category:     "art",
	},
	{
		Title:        "Lo-fi Coffee Meetup",
		Description:  "Slow coffee, soft beats and new people.",
		LocationName: "Third Wave Coffee, Koramangala",
		EventTime:    "Sat, 10 AM",
		Latitude:     12.9352,
		Longitude:    77.6245,
		Category:     "meetup",
	},
	{
		Title:        "Campus Coding Jam",
		Description:  "Build something small with strangers in four hours.",
		LocationName: "MG Road Co-working",
		EventTime:    "Sat, 2 PM",
		Latitude:     12.9722,
		Longitude:    77.5937,
		Category:     "workshop",
	},
	{
		Title:        "Open Mic - Chill Vibes",
		Description:  "Acoustic sets and spoken word.",
		LocationName: "Indiranagar Social",
		EventTime:    "Sun, 6 PM",
		Latitude:     12.9718,
		Longitude:    77.6412,
		Category:     "music",
	},
	{
		Title:        "Anime & Chill",
		Description:  "Watch party and cosplay corner.",
		LocationName: "Hebbal Lake View Cafe",
		EventTime:    "Sun, 4 PM",
		Latitude:     13.0358,
		Longitude:    77.5970,
		Category:     "general",
	},
}
