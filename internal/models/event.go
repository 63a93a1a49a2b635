package models

import "time"

// Event is a persisted catalog entry.
// Latitude/Longitude of 0 mean "unknown"; the reconciler may fill them later.
type Event struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	LocationName string    `json:"location_name"`
	EventTime    string    `json:"event_time"`
	Latitude     float64   `json:"lat"`
	Longitude    float64   `json:"lon"`
	Category     string    `json:"category"`
	Popularity   int       `json:"popularity"`
	CreatedBy    *int64    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"-"`
}

// CreateEventRequest is the POST /api/events payload.
// Category is optional; when empty it is derived from the title.
type CreateEventRequest struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Description  string   `json:"description"`
	LocationName string   `json:"location_name" binding:"max=200"`
	EventTime    string   `json:"event_time" binding:"max=100"`
	Latitude     *float64 `json:"lat" binding:"omitempty,latitude"`
	Longitude    *float64 `json:"lon" binding:"omitempty,longitude"`
	Category     string   `json:"category" binding:"max=100"`
	UserID       *int64   `json:"user_id"`
}

// InterestRequest is the POST /api/interested payload.
type InterestRequest struct {
	EventID int64 `json:"event_id"`
	UserID  int64 `json:"user_id"`
}

// IngestRequest is the POST /api/admin/ingest payload. Zero values fall back to config.
type IngestRequest struct {
	Location  string `json:"location"`
	MaxEvents int    `json:"max_events" binding:"gte=0,lte=100"`
}

// IngestResponse reports the outcome of a manual ingestion run.
type IngestResponse struct {
	Location string `json:"location"`
	Inserted int    `json:"inserted"`
	Status   string `json:"status"`
}
