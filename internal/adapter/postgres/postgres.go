// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"petdiary/internal/domain"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

var _ domain.EventRepository = (*DB)(nil)
var _ domain.NoteRepository = (*DB)(nil)
var _ domain.WeightRepository = (*DB)(nil)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS events (id TEXT PRIMARY KEY, date TEXT NOT NULL, title TEXT NOT NULL, description TEXT NOT NULL DEFAULT '', type TEXT NOT NULL CHECK(type IN ('medical','life','vaccine','birthday','medication','deworming','other')), is_completed BOOLEAN, created_at TIMESTAMPTZ NOT NULL DEFAULT now());",
		"CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);",
		"CREATE TABLE IF NOT EXISTS notes (id TEXT PRIMARY KEY, date TIMESTAMPTZ NOT NULL, content TEXT NOT NULL, tags TEXT[] NOT NULL DEFAULT '{}');",
		"CREATE INDEX IF NOT EXISTS idx_notes_date ON notes(date);",
		"CREATE TABLE IF NOT EXISTS weights (id TEXT PRIMARY KEY, date TEXT NOT NULL, weight INTEGER NOT NULL CHECK(weight > 0), created_at TIMESTAMPTZ NOT NULL DEFAULT now());",
		"CREATE INDEX IF NOT EXISTS idx_weights_date ON weights(date);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// setClause collects "col = $n" assignments for a partial update.
type setClause struct {
	cols []string
	args []any
}

func (c *setClause) add(col string, v any) {
	c.args = append(c.args, v)
	c.cols = append(c.cols, fmt.Sprintf("%s = $%d", col, len(c.args)))
}

// exec runs UPDATE table SET ... WHERE id = $n and reports ErrNotFound when
// no row matched.
func (c *setClause) exec(ctx context.Context, db *sql.DB, table, id string) error {
	if len(c.cols) == 0 {
		var exists bool
		if err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM "+table+" WHERE id=$1);", id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return nil
	}
	args := append(c.args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id=$%d;", table, strings.Join(c.cols, ", "), len(args))
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
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

func deleteByID(ctx context.Context, db *sql.DB, table, id string) (bool, error) {
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id=$1;", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
