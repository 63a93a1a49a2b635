package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/vibe-events/internal/models"
)

func sampleEvent() NormalizedEvent {
	return NormalizedEvent{
		Title:        "Indie Night",
		Description:  "Bands and more",
		LocationName: UnknownVenue,
		Latitude:     12.97,
		Longitude:    77.59,
		Category:     General,
	}
}

func TestReconcile_InsertWhenNoMatch(t *testing.T) {
	n := sampleEvent()
	a := Reconcile(n, nil)

	assert.Equal(t, ActionInsert, a.Kind)
	assert.Equal(t, "Indie Night", a.Insert.Title)
	assert.Equal(t, "general", a.Insert.Category)
	assert.Equal(t, 0, a.Insert.Popularity)
}

func TestReconcile_MergeFillsGapsOnly(t *testing.T) {
	existing := &models.Event{
		ID:           7,
		Title:        "Indie Night",
		Description:  "old description",
		LocationName: UnknownVenue,
		Latitude:     12.97,
		Longitude:    77.59,
		Category:     "general",
		Popularity:   4,
	}
	n := sampleEvent()
	n.Category = Music
	n.EventTime = "Fri 7PM"
	n.LocationName = "The Hall"
	n.Description = "new description"

	a := Reconcile(n, existing)
	require.Equal(t, ActionMerge, a.Kind)
	assert.Equal(t, int64(7), a.ExistingID)
	require.NotNil(t, a.Updates.Category)
	assert.Equal(t, Music, *a.Updates.Category)
	require.NotNil(t, a.Updates.EventTime)
	assert.Equal(t, "Fri 7PM", *a.Updates.EventTime)
	require.NotNil(t, a.Updates.LocationName)
	assert.Equal(t, "The Hall", *a.Updates.LocationName)
	assert.Nil(t, a.Updates.Latitude)
	assert.Nil(t, a.Updates.Longitude)
}

func TestReconcile_MergeNeverDowngrades(t *testing.T) {
	existing := &models.Event{
		ID:           1,
		Title:        "Indie Night",
		LocationName: "The Hall",
		EventTime:    "Sat 8PM",
		Latitude:     12.97,
		Longitude:    77.59,
		Category:     "art",
	}

	for _, incoming := range Taxonomy() {
		n := sampleEvent()
		n.Category = incoming
		n.EventTime = "Mon 9AM"
		n.LocationName = "Somewhere else"

		a := Reconcile(n, existing)
		assert.Equal(t, ActionMerge, a.Kind)
		assert.True(t, a.Updates.Empty(), "incoming %s must not change a populated row", incoming)
	}
}

func TestReconcile_FillsZeroCoordinates(t *testing.T) {
	existing := &models.Event{ID: 3, Title: "Pop-up", Category: "art", LocationName: "Here"}
	n := NormalizedEvent{Title: "Pop-up", Latitude: 12.5, Longitude: 77.1, Category: Art}

	a := Reconcile(n, existing)
	require.NotNil(t, a.Updates.Latitude)
	require.NotNil(t, a.Updates.Longitude)
	assert.Equal(t, 12.5, *a.Updates.Latitude)
	assert.Equal(t, 77.1, *a.Updates.Longitude)
}

func TestReconcileInto_IdempotentOnEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	n := sampleEvent()

	first, err := ReconcileInto(ctx, c, n)
	require.NoError(t, err)
	assert.Equal(t, ActionInsert, first.Kind)

	second, err := ReconcileInto(ctx, c, n)
	require.NoError(t, err)
	assert.Equal(t, ActionMerge, second.Kind)
	assert.Equal(t, first.Insert.ID, second.ExistingID)

	events := c.Events()
	require.Len(t, events, 1)
	assert.Equal(t, 0, events[0].Popularity)
}

func TestReconcileInto_CategoryIsMonotonic(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	n := sampleEvent()
	_, err := ReconcileInto(ctx, c, n)
	require.NoError(t, err)

	n.Category = Comedy
	_, err = ReconcileInto(ctx, c, n)
	require.NoError(t, err)

	for _, incoming := range []Category{General, Music, Art} {
		n.Category = incoming
		_, err = ReconcileInto(ctx, c, n)
		require.NoError(t, err)
		assert.Equal(t, "comedy", c.Events()[0].Category)
	}
}

func TestReconcileInto_LocationNameIsMonotonic(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	n := sampleEvent()
	_, err := ReconcileInto(ctx, c, n)
	require.NoError(t, err)

	n.LocationName = "Blue Frog"
	_, err = ReconcileInto(ctx, c, n)
	require.NoError(t, err)

	for _, name := range []string{UnknownVenue, "", "Another Place"} {
		n.LocationName = name
		_, err = ReconcileInto(ctx, c, n)
		require.NoError(t, err)
		assert.Equal(t, "Blue Frog", c.Events()[0].LocationName)
	}
}

type failingCatalog struct {
	Memory
	err error
}

func (f *failingCatalog) FindBySimilarityKey(context.Context, string, float64, float64) (models.Event, error) {
	return models.Event{}, f.err
}

func TestReconcileInto_LookupError(t *testing.T) {
	boom := errors.New("connection reset")
	c := &failingCatalog{err: boom}

	_, err := ReconcileInto(context.Background(), c, sampleEvent())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, c.Events())
}
