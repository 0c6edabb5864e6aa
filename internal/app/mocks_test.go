package app_test

import (
	"context"

	"petdiary/internal/domain"
)

type mockWeightRepo struct {
	listFn   func(ctx context.Context) ([]domain.WeightRecord, error)
	addFn    func(ctx context.Context, w domain.WeightRecord) (*domain.WeightRecord, error)
	deleteFn func(ctx context.Context, id string) (bool, error)
}

func (m *mockWeightRepo) ListWeights(ctx context.Context) ([]domain.WeightRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockWeightRepo) AddWeight(ctx context.Context, w domain.WeightRecord) (*domain.WeightRecord, error) {
	if m.addFn != nil {
		return m.addFn(ctx, w)
	}
	w.ID = "w1"
	return &w, nil
}

func (m *mockWeightRepo) DeleteWeight(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

type mockEventRepo struct {
	listFn   func(ctx context.Context) ([]domain.CalendarEvent, error)
	createFn func(ctx context.Context, e domain.CalendarEvent) (*domain.CalendarEvent, error)
	updateFn func(ctx context.Context, id string, p domain.EventPatch) error
	deleteFn func(ctx context.Context, id string) (bool, error)
}

func (m *mockEventRepo) ListEvents(ctx context.Context) ([]domain.CalendarEvent, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockEventRepo) CreateEvent(ctx context.Context, e domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if m.createFn != nil {
		return m.createFn(ctx, e)
	}
	e.ID = "e1"
	return &e, nil
}

func (m *mockEventRepo) UpdateEvent(ctx context.Context, id string, p domain.EventPatch) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, p)
	}
	return nil
}

func (m *mockEventRepo) DeleteEvent(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

type mockNoteRepo struct {
	listFn   func(ctx context.Context) ([]domain.Note, error)
	createFn func(ctx context.Context, n domain.Note) (*domain.Note, error)
	updateFn func(ctx context.Context, id string, p domain.NotePatch) error
	deleteFn func(ctx context.Context, id string) (bool, error)
}

func (m *mockNoteRepo) ListNotes(ctx context.Context) ([]domain.Note, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockNoteRepo) CreateNote(ctx context.Context, n domain.Note) (*domain.Note, error) {
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	n.ID = "n1"
	return &n, nil
}

func (m *mockNoteRepo) UpdateNote(ctx context.Context, id string, p domain.NotePatch) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, p)
	}
	return nil
}

func (m *mockNoteRepo) DeleteNote(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}
