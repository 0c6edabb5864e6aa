package postgres

import (
	"context"

	"github.com/google/uuid"

	"petdiary/internal/domain"
)

// ListWeights returns every weight record ordered by date.
func (d *DB) ListWeights(ctx context.Context) ([]domain.WeightRecord, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT id, date, weight FROM weights ORDER BY date, created_at;")
	if err != nil {
		return nil, err
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
func (d *DB) AddWeight(ctx context.Context, w domain.WeightRecord) (*domain.WeightRecord, error) {
	w.ID = uuid.NewString()
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO weights(id, date, weight) VALUES($1, $2, $3);",
		w.ID, w.Date, w.Weight,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// DeleteWeight removes the weight record with the given id.
func (d *DB) DeleteWeight(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, d.sql, "weights", id)
}
