package app

import (
	"context"
	"slices"
	"strings"
	"time"

	"petdiary/internal/domain"
)

// NoteService encapsulates diary note use cases.
type NoteService struct {
	repo domain.NoteRepository
	now  func() time.Time
}

// NewNoteService creates a NoteService backed by the given repository.
func NewNoteService(repo domain.NoteRepository) *NoteService {
	return &NoteService{repo: repo, now: time.Now}
}

// List returns every note, newest first.
func (s *NoteService) List(ctx context.Context) ([]domain.Note, error) {
	notes, err := s.repo.ListNotes(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	slices.SortStableFunc(notes, func(a, b domain.Note) int {
		return b.Date.Compare(a.Date)
	})
	return notes, nil
}

// Create validates n and stores it under a fresh id. A missing date is set to
// the current time. Dates are kept to the microsecond.
func (s *NoteService) Create(ctx context.Context, n domain.Note) (*domain.Note, error) {
	n.ID = ""
	n.Content = strings.TrimSpace(n.Content)
	if n.Content == "" {
		return nil, invalid("content is required")
	}
	if n.Date.IsZero() {
		n.Date = s.now()
	}
	// Postgres keeps microseconds; the stored date must read back unchanged.
	n.Date = n.Date.UTC().Truncate(time.Microsecond)
	n.Tags = domain.NormalizeTags(n.Tags)
	created, err := s.repo.CreateNote(ctx, n)
	return created, storeErr(err)
}

// Update merges patch into the note with the given id. The note keeps its
// original date.
func (s *NoteService) Update(ctx context.Context, id string, patch domain.NotePatch) error {
	if id == "" {
		return invalid("id is required")
	}
	if patch.Empty() {
		return invalid("no fields to update")
	}
	patch, err := patch.Normalize()
	if err != nil {
		return invalid("%v", err)
	}
	return storeErr(s.repo.UpdateNote(ctx, id, patch))
}

// Delete removes the note with the given id. Deleting a missing id is not an
// error; the boolean reports whether anything was removed.
func (s *NoteService) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, invalid("id is required")
	}
	deleted, err := s.repo.DeleteNote(ctx, id)
	return deleted, storeErr(err)
}
