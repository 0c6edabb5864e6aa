package app

import (
	"context"

	"petdiary/internal/domain"
)

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	repo domain.WeightRepository
}

// NewWeightService creates a WeightService backed by the given repository.
func NewWeightService(repo domain.WeightRepository) *WeightService {
	return &WeightService{repo: repo}
}

// List returns the weight history ordered by date ascending.
func (s *WeightService) List(ctx context.Context) ([]domain.WeightRecord, error) {
	ws, err := s.repo.ListWeights(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return domain.SortWeights(ws), nil
}

// Record validates and stores a new weighing.
func (s *WeightService) Record(ctx context.Context, w domain.WeightRecord) (*domain.WeightRecord, error) {
	w.ID = ""
	if w.Weight <= 0 {
		return nil, invalid("weight must be > 0")
	}
	day, err := normalizeDay(w.Date)
	if err != nil {
		return nil, err
	}
	w.Date = day
	created, err := s.repo.AddWeight(ctx, w)
	return created, storeErr(err)
}

// Delete removes the weighing with the given id. Deleting a missing id is not
// an error; the boolean reports whether anything was removed.
func (s *WeightService) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, invalid("id is required")
	}
	deleted, err := s.repo.DeleteWeight(ctx, id)
	return deleted, storeErr(err)
}

// Gain returns the weight gained between the first and the latest weighing.
func (s *WeightService) Gain(ctx context.Context) (int, error) {
	ws, err := s.repo.ListWeights(ctx)
	if err != nil {
		return 0, storeErr(err)
	}
	return domain.WeightGain(ws), nil
}

// Seed stores history when the collection is empty and returns the number
// of records inserted. A non-empty collection is left alone.
func (s *WeightService) Seed(ctx context.Context, history []domain.WeightRecord) (int, error) {
	existing, err := s.repo.ListWeights(ctx)
	if err != nil {
		return 0, storeErr(err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, w := range history {
		if _, err := s.Record(ctx, w); err != nil {
			return i, err
		}
	}
	return len(history), nil
}
