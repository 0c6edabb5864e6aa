package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"petdiary/internal/domain"
)

// ListNotes returns every note.
func (d *DB) ListNotes(ctx context.Context) ([]domain.Note, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT id, date, content, tags FROM notes ORDER BY date DESC;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Note, 0)
	for rows.Next() {
		var n domain.Note
		var tags pq.StringArray
		if err := rows.Scan(&n.ID, &n.Date, &n.Content, &tags); err != nil {
			return nil, err
		}
		n.Tags = domain.NormalizeTags(tags)
		n.Date = n.Date.UTC()
		out = append(out, n)
	}
	return out, rows.Err()
}

// CreateNote inserts n under a fresh id.
func (d *DB) CreateNote(ctx context.Context, n domain.Note) (*domain.Note, error) {
	n.ID = uuid.NewString()
	n.Tags = domain.NormalizeTags(n.Tags)
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO notes(id, date, content, tags) VALUES($1, $2, $3, $4);",
		n.ID, n.Date.UTC(), n.Content, pq.Array(n.Tags),
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// UpdateNote writes the fields set in patch. The date column is never touched.
func (d *DB) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) error {
	var c setClause
	if patch.Content != nil {
		c.add("content", *patch.Content)
	}
	if patch.Tags != nil {
		c.add("tags", pq.Array(domain.NormalizeTags(*patch.Tags)))
	}
	return c.exec(ctx, d.sql, "notes", id)
}

// DeleteNote removes the note with the given id.
func (d *DB) DeleteNote(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, d.sql, "notes", id)
}
