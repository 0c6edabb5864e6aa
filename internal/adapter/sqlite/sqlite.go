// Package sqlite implements the domain repositories on a single SQLite file.
// It backs local single-user installs where running PostgreSQL is overkill.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"petdiary/internal/domain"
)

// Store implements the event, note and weight repositories.
type Store struct {
	db *sql.DB
}

var _ domain.EventRepository = (*Store)(nil)
var _ domain.NoteRepository = (*Store)(nil)
var _ domain.WeightRepository = (*Store)(nil)

// Open creates the parent directory if needed, opens the database file and
// runs migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			is_completed INTEGER,
			seq INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			content TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS weights (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			weight INTEGER NOT NULL,
			seq INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ListEvents returns every event in insertion order.
func (s *Store) ListEvents(ctx context.Context) ([]domain.CalendarEvent, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, date, title, description, type, is_completed FROM events ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
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
func (s *Store) CreateEvent(ctx context.Context, e domain.CalendarEvent) (*domain.CalendarEvent, error) {
	e.ID = uuid.NewString()
	var done sql.NullBool
	if e.IsCompleted != nil {
		done = sql.NullBool{Bool: *e.IsCompleted, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, date, title, description, type, is_completed, seq)
		VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM events))`,
		e.ID, e.Date, e.Title, e.Description, string(e.Type), done,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}
	return &e, nil
}

// UpdateEvent writes the fields set in patch.
func (s *Store) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) error {
	var u update
	if patch.Date != nil {
		u.set("date", *patch.Date)
	}
	if patch.Title != nil {
		u.set("title", *patch.Title)
	}
	if patch.Description != nil {
		u.set("description", *patch.Description)
	}
	if patch.Type != nil {
		u.set("type", string(*patch.Type))
	}
	if patch.IsCompleted != nil {
		u.set("is_completed", *patch.IsCompleted)
	}
	return u.run(ctx, s.db, "events", id)
}

// DeleteEvent removes the event with the given id.
func (s *Store) DeleteEvent(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "events", id)
}

// ListNotes returns every note, newest first.
func (s *Store) ListNotes(ctx context.Context) ([]domain.Note, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, date, content, tags FROM notes ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Note, 0)
	for rows.Next() {
		var n domain.Note
		var date, tagsJSON string
		if err := rows.Scan(&n.ID, &date, &n.Content, &tagsJSON); err != nil {
			return nil, err
		}
		if n.Date, err = time.Parse(time.RFC3339Nano, date); err != nil {
			return nil, fmt.Errorf("note %s: bad date %q: %w", n.ID, date, err)
		}
		var tags []string
		if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
			return nil, fmt.Errorf("note %s: failed to unmarshal tags: %w", n.ID, err)
		}
		n.Tags = domain.NormalizeTags(tags)
		out = append(out, n)
	}
	return out, rows.Err()
}

// CreateNote inserts n under a fresh id.
func (s *Store) CreateNote(ctx context.Context, n domain.Note) (*domain.Note, error) {
	n.ID = uuid.NewString()
	n.Date = n.Date.UTC()
	n.Tags = domain.NormalizeTags(n.Tags)
	tagsJSON, err := json.Marshal(n.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO notes (id, date, content, tags) VALUES (?, ?, ?, ?)`,
		n.ID, n.Date.Format(time.RFC3339Nano), n.Content, string(tagsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}
	return &n, nil
}

// UpdateNote writes the fields set in patch.
func (s *Store) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) error {
	var u update
	if patch.Content != nil {
		u.set("content", *patch.Content)
	}
	if patch.Tags != nil {
		tagsJSON, err := json.Marshal(domain.NormalizeTags(*patch.Tags))
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		u.set("tags", string(tagsJSON))
	}
	return u.run(ctx, s.db, "notes", id)
}

// DeleteNote removes the note with the given id.
func (s *Store) DeleteNote(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "notes", id)
}

// ListWeights returns every weight record ordered by date.
func (s *Store) ListWeights(ctx context.Context) ([]domain.WeightRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, date, weight FROM weights ORDER BY date, seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list weights: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WeightRecord, 0)
	for rows.Next() {
		var w domain.WeightRecord
		if err := rows.Scan(&w.ID, &w.Date, &w.Weight); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// AddWeight inserts w under a fresh id.
func (s *Store) AddWeight(ctx context.Context, w domain.WeightRecord) (*domain.WeightRecord, error) {
	w.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO weights (id, date, weight, seq)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM weights))`,
		w.ID, w.Date, w.Weight,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert weight: %w", err)
	}
	return &w, nil
}

// DeleteWeight removes the weight record with the given id.
func (s *Store) DeleteWeight(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "weights", id)
}

func (s *Store) deleteByID(ctx context.Context, table, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type update struct {
	cols []string
	args []any
}

func (u *update) set(col string, v any) {
	u.cols = append(u.cols, col+" = ?")
	u.args = append(u.args, v)
}

func (u *update) run(ctx context.Context, db *sql.DB, table, id string) error {
	if len(u.cols) == 0 {
		var n int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE id = ?", id).Scan(&n); err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	}
	res, err := db.ExecContext(ctx,
		"UPDATE "+table+" SET "+strings.Join(u.cols, ", ")+" WHERE id = ?",
		append(u.args, id)...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
