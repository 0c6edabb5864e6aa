// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"petdiary/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu      sync.Mutex
	events  []domain.CalendarEvent
	notes   []domain.Note
	weights []domain.WeightRecord
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.EventRepository = (*DB)(nil)
var _ domain.NoteRepository = (*DB)(nil)
var _ domain.WeightRepository = (*DB)(nil)

func newID() string {
	return uuid.NewString()
}

// --- EventRepository ---

// ListEvents returns a copy of every event in insertion order.
func (db *DB) ListEvents(ctx context.Context) ([]domain.CalendarEvent, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.CalendarEvent, len(db.events))
	for i, e := range db.events {
		out[i] = cloneEvent(e)
	}
	return out, nil
}

// CreateEvent stores e under a fresh id.
func (db *DB) CreateEvent(ctx context.Context, e domain.CalendarEvent) (*domain.CalendarEvent, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e = cloneEvent(e)
	e.ID = newID()
	db.events = append(db.events, e)
	ret := cloneEvent(e)
	return &ret, nil
}

// UpdateEvent merges patch into the event with the given id.
func (db *DB) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.events {
		if db.events[i].ID == id {
			patch.Apply(&db.events[i])
			return nil
		}
	}
	return domain.ErrNotFound
}

// DeleteEvent removes the event with the given id.
func (db *DB) DeleteEvent(ctx context.Context, id string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	n := len(db.events)
	db.events = slices.DeleteFunc(db.events, func(e domain.CalendarEvent) bool { return e.ID == id })
	return len(db.events) < n, nil
}

func cloneEvent(e domain.CalendarEvent) domain.CalendarEvent {
	if e.IsCompleted != nil {
		v := *e.IsCompleted
		e.IsCompleted = &v
	}
	return e
}

// --- NoteRepository ---

// ListNotes returns a copy of every note in insertion order.
func (db *DB) ListNotes(ctx context.Context) ([]domain.Note, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Note, len(db.notes))
	for i, n := range db.notes {
		out[i] = cloneNote(n)
	}
	return out, nil
}

// CreateNote stores n under a fresh id.
func (db *DB) CreateNote(ctx context.Context, n domain.Note) (*domain.Note, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	n = cloneNote(n)
	n.ID = newID()
	db.notes = append(db.notes, n)
	ret := cloneNote(n)
	return &ret, nil
}

// UpdateNote merges patch into the note with the given id.
func (db *DB) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.notes {
		if db.notes[i].ID == id {
			patch.Apply(&db.notes[i])
			return nil
		}
	}
	return domain.ErrNotFound
}

// DeleteNote removes the note with the given id.
func (db *DB) DeleteNote(ctx context.Context, id string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	n := len(db.notes)
	db.notes = slices.DeleteFunc(db.notes, func(note domain.Note) bool { return note.ID == id })
	return len(db.notes) < n, nil
}

func cloneNote(n domain.Note) domain.Note {
	n.Tags = append(make([]string, 0, len(n.Tags)), n.Tags...)
	return n
}

// --- WeightRepository ---

// ListWeights returns a copy of every weight record in insertion order.
func (db *DB) ListWeights(ctx context.Context) ([]domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return slices.Clone(db.weights), nil
}

// AddWeight stores w under a fresh id.
func (db *DB) AddWeight(ctx context.Context, w domain.WeightRecord) (*domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	w.ID = newID()
	db.weights = append(db.weights, w)
	return &w, nil
}

// DeleteWeight removes the weight record with the given id.
func (db *DB) DeleteWeight(ctx context.Context, id string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	n := len(db.weights)
	db.weights = slices.DeleteFunc(db.weights, func(w domain.WeightRecord) bool { return w.ID == id })
	return len(db.weights) < n, nil
}
