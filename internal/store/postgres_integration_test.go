//go:build integration

package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/PratikDhanave/vibe-events/internal/catalog"
	"github.com/PratikDhanave/vibe-events/internal/models"
)

// newTestStore starts a throwaway Postgres and returns a store with the schema applied.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "vibe",
				"POSTGRES_PASSWORD": "vibe",
				"POSTGRES_DB":       "vibe",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://vibe:vibe@%s:%s/vibe?sslmode=disable", host, port.Port())
	st, err := NewPostgresStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	require.NoError(t, st.EnsureSchema(ctx))
	// Second run must be a no-op.
	require.NoError(t, st.EnsureSchema(ctx))
	return st
}

func TestPostgres_ReconcileMergesIntoExistingRow(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first := catalog.NormalizedEvent{
		Title:        "Jazz Night",
		Description:  "Live quartet",
		LocationName: catalog.UnknownVenue,
		Latitude:     12.97,
		Longitude:    77.59,
		Category:     catalog.General,
	}
	act, err := catalog.ReconcileInto(ctx, st, first)
	require.NoError(t, err)
	require.Equal(t, catalog.ActionInsert, act.Kind)

	second := first
	second.Category = catalog.Music
	second.LocationName = "Blue Frog"
	second.EventTime = "Sat, 8 PM"
	act, err = catalog.ReconcileInto(ctx, st, second)
	require.NoError(t, err)
	assert.Equal(t, catalog.ActionMerge, act.Kind)

	got, err := st.FindBySimilarityKey(ctx, "Jazz Night", 12.97, 77.59)
	require.NoError(t, err)
	assert.Equal(t, "music", got.Category)
	assert.Equal(t, "Blue Frog", got.LocationName)
	assert.Equal(t, "Sat, 8 PM", got.EventTime)
	assert.Equal(t, "Live quartet", got.Description)
	assert.Equal(t, 0, got.Popularity)

	n, err := st.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = st.FindBySimilarityKey(ctx, "Jazz Night", 1, 1)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestPostgres_SeedOnlyWhenEmpty(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seed := []models.Event{
		{Title: "A", Description: "a", LocationName: "x", Category: "art", Latitude: 1, Longitude: 1},
		{Title: "B", Description: "b", LocationName: "y", Category: "music", Latitude: 2, Longitude: 2},
	}
	n, err := st.SeedEvents(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = st.SeedEvents(ctx, seed)
	require.NoError(t, err)
	assert.Zero(t, n)

	events, err := st.ListEvents(ctx, []string{"music"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "B", events[0].Title)

	events, err = st.ListEvents(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestPostgres_MarkInterested(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	userID, err := st.CreateUser(ctx, "ana@example.com", "hash", "Ana")
	require.NoError(t, err)
	eventID, err := st.InsertEvent(ctx, models.Event{Title: "Meetup", Category: "meetup", Popularity: 99})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.MarkInterested(ctx, eventID, userID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := st.FindBySimilarityKey(ctx, "Meetup", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Popularity)

	var logs int
	require.NoError(t, st.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_event_logs WHERE event_id = $1 AND action = 'clicked_interested'`,
		eventID).Scan(&logs))
	assert.Equal(t, 10, logs)

	_, err = st.MarkInterested(ctx, 424242, userID)
	assert.ErrorIs(t, err, ErrNotFound)

	var interests, allLogs int
	require.NoError(t, st.pool.QueryRow(ctx, `SELECT COUNT(*) FROM interests`).Scan(&interests))
	require.NoError(t, st.pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_event_logs`).Scan(&allLogs))
	assert.Equal(t, 10, interests)
	assert.Equal(t, 10, allLogs)

	got, err = st.FindBySimilarityKey(ctx, "Meetup", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Popularity)
}

func TestPostgres_InsertEventWithUnknownCreator(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	missing := int64(9999)
	_, err := st.InsertEvent(ctx, models.Event{Title: "Orphan", CreatedBy: &missing})
	assert.ErrorIs(t, err, ErrUnknownUser)

	n, err := st.CountEvents(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostgres_Users(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.CreateUser(ctx, "ana@example.com", "hash", "Ana")
	require.NoError(t, err)

	_, err = st.CreateUser(ctx, "ana@example.com", "hash2", "Other")
	assert.ErrorIs(t, err, ErrEmailTaken)

	city := "Pune"
	require.NoError(t, st.UpdateProfile(ctx, models.ProfileUpdate{UserID: id, City: &city}))
	assert.ErrorIs(t, st.UpdateProfile(ctx, models.ProfileUpdate{UserID: id + 100, City: &city}), ErrNotFound)

	require.NoError(t, st.SetProfileImage(ctx, id, "uploads/1.png"))

	u, err := st.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
	require.NotNil(t, u.City)
	assert.Equal(t, "Pune", *u.City)
	require.NotNil(t, u.ProfileImage)
	assert.Equal(t, "uploads/1.png", *u.ProfileImage)

	_, err = st.GetUser(ctx, id+100)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.ReplacePreferences(ctx, id, []string{"art", "music"}))
	require.NoError(t, st.ReplacePreferences(ctx, id, []string{"comedy"}))
	var prefs int
	require.NoError(t, st.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_preferences WHERE user_id = $1`, id).Scan(&prefs))
	assert.Equal(t, 1, prefs)

	require.NoError(t, st.SaveQuizAnswer(ctx, id, "Pick your vibe today", "Calm"))
}
