package domain

import (
	"context"
	"time"
)

// WeightRecord is a single weighing, in grams, on a calendar day.
type WeightRecord struct {
	ID     string `json:"id,omitempty"`
	Date   string `json:"date"`
	Weight int    `json:"weight"`
}

// When returns the start of the record's day.
func (w WeightRecord) When() time.Time {
	return dayInstant(w.Date)
}

// WeightRepository is the port for weight persistence. Weight records are
// never updated.
type WeightRepository interface {
	ListWeights(ctx context.Context) ([]WeightRecord, error)
	AddWeight(ctx context.Context, w WeightRecord) (*WeightRecord, error)
	DeleteWeight(ctx context.Context, id string) (bool, error)
}
