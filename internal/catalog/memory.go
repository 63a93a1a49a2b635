package catalog

import (
	"context"
	"sync"

	"github.com/PratikDhanave/vibe-events/internal/models"
)

// Memory is an in-process Catalog used in tests and local tooling.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	events []models.Event
}

// NewMemory returns an empty catalog. Seed events keep their order and get fresh ids.
func NewMemory(seed ...models.Event) *Memory {
	m := &Memory{}
	for _, e := range seed {
		_, _ = m.InsertEvent(context.Background(), e)
	}
	return m
}

func (m *Memory) FindBySimilarityKey(_ context.Context, title string, lat, lon float64) (models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.Title == title && e.Latitude == lat && e.Longitude == lon {
			return e, nil
		}
	}
	return models.Event{}, ErrNotFound
}

func (m *Memory) InsertEvent(_ context.Context, e models.Event) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	m.events = append(m.events, e)
	return e.ID, nil
}

func (m *Memory) UpdateEventFields(_ context.Context, id int64, u FieldUpdates) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID != id {
			continue
		}
		e := &m.events[i]
		if u.Category != nil {
			e.Category = string(*u.Category)
		}
		if u.EventTime != nil {
			e.EventTime = *u.EventTime
		}
		if u.LocationName != nil {
			e.LocationName = *u.LocationName
		}
		if u.Latitude != nil {
			e.Latitude = *u.Latitude
		}
		if u.Longitude != nil {
			e.Longitude = *u.Longitude
		}
		return nil
	}
	return ErrNotFound
}

// Events returns a copy of the stored events in insertion order.
func (m *Memory) Events() []models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Event, len(m.events))
	copy(out, m.events)
	return out
}
