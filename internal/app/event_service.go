package app

import (
	"context"
	"strings"

	"petdiary/internal/domain"
)

// EventService encapsulates calendar event use cases.
type EventService struct {
	repo domain.EventRepository
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(repo domain.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// List returns every event ordered by date ascending.
func (s *EventService) List(ctx context.Context) ([]domain.CalendarEvent, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return domain.SortEvents(events), nil
}

// Create validates e and stores it under a fresh id. Any id on e is ignored.
func (s *EventService) Create(ctx context.Context, e domain.CalendarEvent) (*domain.CalendarEvent, error) {
	e.ID = ""
	e.Title = strings.TrimSpace(e.Title)
	if e.Type == "" {
		e.Type = domain.EventOther
	}
	if e.Title == "" {
		return nil, invalid("title is required")
	}
	day, err := normalizeDay(e.Date)
	if err != nil {
		return nil, err
	}
	e.Date = day
	if !e.Type.Valid() {
		return nil, invalid("unknown event type %q", e.Type)
	}
	created, err := s.repo.CreateEvent(ctx, e)
	return created, storeErr(err)
}

// Update merges patch into the event with the given id.
func (s *EventService) Update(ctx context.Context, id string, patch domain.EventPatch) error {
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
	return storeErr(s.repo.UpdateEvent(ctx, id, patch))
}

// Delete removes the event with the given id. Deleting a missing id is not an
// error; the boolean reports whether anything was removed.
func (s *EventService) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, invalid("id is required")
	}
	deleted, err := s.repo.DeleteEvent(ctx, id)
	return deleted, storeErr(err)
}

func normalizeDay(s string) (string, error) {
	day, err := domain.NormalizeDay(s)
	if err != nil {
		return "", invalid("%v", err)
	}
	return day, nil
}
