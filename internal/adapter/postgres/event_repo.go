package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"petdiary/internal/domain"
)

// ListEvents returns every event.
func (d *DB) ListEvents(ctx context.Context) ([]domain.CalendarEvent, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, date, title, description, type, is_completed FROM events ORDER BY date, created_at;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.CalendarEvent, 0)
	for rows.Next() {
		var e domain.CalendarEvent
		var done sql.NullBool
		if err := rows.Scan(&e.ID, &e.Date, &e.Title, &e.Description, &e.Type, &done); err != nil {
			return nil, err
		}
		if done.Valid {
			e.IsCompleted = &done.Bool
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreateEvent inserts e under a fresh id.
func (d *DB) CreateEvent(ctx context.Context, e domain.CalendarEvent) (*domain.CalendarEvent, error) {
	e.ID = uuid.NewString()
	var done sql.NullBool
	if e.IsCompleted != nil {
		done = sql.NullBool{Bool: *e.IsCompleted, Valid: true}
	}
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO events(id, date, title, description, type, is_completed) VALUES($1, $2, $3, $4, $5, $6);",
		e.ID, e.Date, e.Title, e.Description, string(e.Type), done,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEvent writes the fields set in patch.
func (d *DB) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) error {
	var c setClause
	if patch.Date != nil {
		c.add("date", *patch.Date)
	}
	if patch.Title != nil {
		c.add("title", *patch.Title)
	}
	if patch.Description != nil {
		c.add("description", *patch.Description)
	}
	if patch.Type != nil {
		c.add("type", string(*patch.Type))
	}
	if patch.IsCompleted != nil {
		c.add("is_completed", *patch.IsCompleted)
	}
	return c.exec(ctx, d.sql, "events", id)
}

// DeleteEvent removes the event with the given id.
func (d *DB) DeleteEvent(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, d.sql, "events", id)
}
