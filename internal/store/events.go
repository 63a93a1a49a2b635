package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/PratikDhanave/vibe-events/internal/catalog"
	"github.com/PratikDhanave/vibe-events/internal/models"
)

const eventColumns = `id, title, description, location_name, event_time, lat, lon, category, popularity, created_by, created_at`

func scanEvent(row pgx.Row) (models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.LocationName, &e.EventTime,
		&e.Latitude, &e.Longitude, &e.Category, &e.Popularity, &e.CreatedBy, &e.CreatedAt,
	)
	return e, err
}

// FindBySimilarityKey returns the oldest event with exactly this title and
// coordinates, or catalog.ErrNotFound.
func (p *PostgresStore) FindBySimilarityKey(ctx context.Context, title string, lat, lon float64) (models.Event, error) {
	e, err := scanEvent(p.pool.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE title = $1 AND lat = $2 AND lon = $3
		ORDER BY id
		LIMIT 1
	`, title, lat, lon))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Event{}, catalog.ErrNotFound
	}
	return e, err
}

// InsertEvent stores e with popularity forced to 0 and returns the new id.
// A CreatedBy that names no user yields ErrUnknownUser.
func (p *PostgresStore) InsertEvent(ctx context.Context, e models.Event) (int64, error) {
	if e.Category == "" {
		e.Category = string(catalog.General)
	}

	var id int64
	err := p.pool.QueryRow(ctx, `
		INSERT INTO events(title, description, location_name, event_time, lat, lon, category, popularity, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,0,$8)
		RETURNING id
	`, e.Title, e.Description, e.LocationName, e.EventTime, e.Latitude, e.Longitude, e.Category, e.CreatedBy).Scan(&id)
	if isForeignKeyViolation(err) {
		return 0, ErrUnknownUser
	}
	return id, err
}

// UpdateEventFields writes the non-nil fields of u. Popularity, title and
// description are never part of an update.
func (p *PostgresStore) UpdateEventFields(ctx context.Context, id int64, u catalog.FieldUpdates) error {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if u.Category != nil {
		add("category", string(*u.Category))
	}
	if u.EventTime != nil {
		add("event_time", *u.EventTime)
	}
	if u.LocationName != nil {
		add("location_name", *u.LocationName)
	}
	if u.Latitude != nil {
		add("lat", *u.Latitude)
	}
	if u.Longitude != nil {
		add("lon", *u.Longitude)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	tag, err := p.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE events SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)),
		args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// ListEvents returns events ordered by id. A non-empty categories slice
// restricts the result to those categories.
func (p *PostgresStore) ListEvents(ctx context.Context, categories []string) ([]models.Event, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if len(categories) > 0 {
		rows, err = p.pool.Query(ctx, `
			SELECT `+eventColumns+`
			FROM events
			WHERE category = ANY($1)
			ORDER BY id
		`, categories)
	} else {
		rows, err = p.pool.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id`)
	}
	if err != nil {
		return nil, err
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Event, error) {
		return scanEvent(row)
	})
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

// CountEvents returns the catalog size.
func (p *PostgresStore) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// SeedEvents inserts events only when the catalog is empty and returns how many were written.
func (p *PostgresStore) SeedEvents(ctx context.Context, events []models.Event) (int, error) {
	n, err := p.CountEvents(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(`
			INSERT INTO events(title, description, location_name, event_time, lat, lon, category)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, e.Title, e.Description, e.LocationName, e.EventTime, e.Latitude, e.Longitude, e.Category)
	}
	if err := p.pool.SendBatch(ctx, batch).Close(); err != nil {
		return 0, err
	}
	return len(events), nil
}

// MarkInterested records that userID is interested in eventID. The interest
// row, the activity log row and the popularity increment commit together.
// The increment is done in SQL so concurrent calls never lose an update.
func (p *PostgresStore) MarkInterested(ctx context.Context, eventID, userID int64) (int, error) {
	var popularity int
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE events SET popularity = popularity + 1
			WHERE id = $1
			RETURNING popularity
		`, eventID).Scan(&popularity)
		if err != nil {
			return notFound(err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO interests(event_id, user_id) VALUES ($1,$2)`, eventID, userID); err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO user_event_logs(user_id, event_id, action) VALUES ($1,$2,'clicked_interested')`,
			userID, eventID)
		return err
	})
	return popularity, err
}
