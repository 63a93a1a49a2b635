package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/PratikDhanave/vibe-events/internal/models"
)

// Placeholder values written when an external record lacks a field.
const (
	UntitledEvent    = "Untitled Event"
	NoDescription    = "No description"
	UnknownVenue     = "Unknown Venue"
	DefaultLatitude  = 12.97
	DefaultLongitude = 77.59
)

// ErrNotFound is returned by a Catalog when no event has the requested key.
var ErrNotFound = errors.New("catalog: event not found")

// NormalizedEvent is an external record after defaults and classification.
type NormalizedEvent struct {
	Title        string
	Description  string
	LocationName string
	Latitude     float64
	Longitude    float64
	Category     Category
	EventTime    string
}

// FieldUpdates lists the fields a merge writes. Nil means "leave as is".
type FieldUpdates struct {
	Category     *Category
	EventTime    *string
	LocationName *string
	Latitude     *float64
	Longitude    *float64
}

// Empty reports whether the merge would change nothing.
func (u FieldUpdates) Empty() bool {
	return u.Category == nil && u.EventTime == nil && u.LocationName == nil &&
		u.Latitude == nil && u.Longitude == nil
}

// ActionKind tells whether a reconciliation inserts or merges.
type ActionKind int

const (
	ActionInsert ActionKind = iota
	ActionMerge
)

func (k ActionKind) String() string {
	if k == ActionMerge {
		return "merge"
	}
	return "insert"
}

// Action is the outcome of Reconcile.
// Insert carries the new row; Merge carries the target id and field updates.
type Action struct {
	Kind       ActionKind
	Insert     models.Event
	ExistingID int64
	Updates    FieldUpdates
}

// Catalog is the persisted event store as seen by the reconciler.
type Catalog interface {
	// FindBySimilarityKey returns the event with exactly this title and
	// coordinates, or ErrNotFound.
	FindBySimilarityKey(ctx context.Context, title string, lat, lon float64) (models.Event, error)
	// InsertEvent stores a new event and returns its id.
	InsertEvent(ctx context.Context, e models.Event) (int64, error)
	// UpdateEventFields applies the non-nil fields of u to event id.
	UpdateEventFields(ctx context.Context, id int64, u FieldUpdates) error
}

// Reconcile decides how n enters the catalog given the event already stored
// under its similarity key (nil when there is none).
//
// Merges only fill gaps: a populated existing value is never replaced.
func Reconcile(n NormalizedEvent, existing *models.Event) Action {
	if existing == nil {
		return Action{
			Kind: ActionInsert,
			Insert: models.Event{
				Title:        n.Title,
				Description:  n.Description,
				LocationName: n.LocationName,
				EventTime:    n.EventTime,
				Latitude:     n.Latitude,
				Longitude:    n.Longitude,
				Category:     string(n.Category),
				Popularity:   0,
			},
		}
	}

	var u FieldUpdates
	if Category(existing.Category) == General && n.Category != General {
		c := n.Category
		u.Category = &c
	}
	if existing.EventTime == "" && n.EventTime != "" {
		t := n.EventTime
		u.EventTime = &t
	}
	if existing.LocationName == "" || existing.LocationName == UnknownVenue {
		if n.LocationName != "" && n.LocationName != existing.LocationName {
			name := n.LocationName
			u.LocationName = &name
		}
	}
	if existing.Latitude == 0 && n.Latitude != 0 {
		lat := n.Latitude
		u.Latitude = &lat
	}
	if existing.Longitude == 0 && n.Longitude != 0 {
		lon := n.Longitude
		u.Longitude = &lon
	}

	return Action{Kind: ActionMerge, ExistingID: existing.ID, Updates: u}
}

// ReconcileInto looks n up in c, decides, and applies the result immediately.
// The returned action carries the new id in Insert.ID for inserts.
func ReconcileInto(ctx context.Context, c Catalog, n NormalizedEvent) (Action, error) {
	var existing *models.Event

	found, err := c.FindBySimilarityKey(ctx, n.Title, n.Latitude, n.Longitude)
	switch {
	case err == nil:
		existing = &found
	case errors.Is(err, ErrNotFound):
	default:
		return Action{}, fmt.Errorf("lookup %q: %w", n.Title, err)
	}

	action := Reconcile(n, existing)

	switch action.Kind {
	case ActionInsert:
		id, err := c.InsertEvent(ctx, action.Insert)
		if err != nil {
			return Action{}, fmt.Errorf("insert %q: %w", n.Title, err)
		}
		action.Insert.ID = id
	case ActionMerge:
		if action.Updates.Empty() {
			return action, nil
		}
		if err := c.UpdateEventFields(ctx, action.ExistingID, action.Updates); err != nil {
			return Action{}, fmt.Errorf("merge into %d: %w", action.ExistingID, err)
		}
	}
	return action, nil
}
