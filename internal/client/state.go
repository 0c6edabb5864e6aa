package client

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"petdiary/internal/domain"
)

const provisionalPrefix = "local-"

// IsProvisional reports whether id is a placeholder that the server has not
// confirmed yet.
func IsProvisional(id string) bool {
	return strings.HasPrefix(id, provisionalPrefix)
}

func provisionalID() string {
	return provisionalPrefix + uuid.NewString()
}

// State mirrors the server's collections. Mutations go to the server first
// and are applied locally only once the server accepted them. Creates insert
// a provisional placeholder that is swapped for the stored record or removed
// again.
type State struct {
	api    *API
	logger *log.Logger

	mu      sync.Mutex
	events  []domain.CalendarEvent
	notes   []domain.Note
	weights []domain.WeightRecord
	lastErr error
}

// NewState creates an empty cache backed by api.
func NewState(api *API, logger *log.Logger) *State {
	if logger == nil {
		logger = log.Default()
	}
	return &State{api: api, logger: logger}
}

// Load fetches all three collections in parallel and replaces the cache. On
// failure the cache is left as it was.
func (s *State) Load(ctx context.Context) error {
	var (
		events  []domain.CalendarEvent
		notes   []domain.Note
		weights []domain.WeightRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		events, err = s.api.ListEvents(gctx)
		return err
	})
	g.Go(func() (err error) {
		notes, err = s.api.ListNotes(gctx)
		return err
	})
	g.Go(func() (err error) {
		weights, err = s.api.ListWeights(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return s.fail("load", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
	s.notes = notes
	s.weights = weights
	s.lastErr = nil
	return nil
}

// LastError returns the error of the most recent failed operation, or nil
// when the last operation succeeded.
func (s *State) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Events returns a copy of the cached events in calendar order.
func (s *State) Events() []domain.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SortEvents(s.events)
}

// Notes returns a copy of the cached notes, newest first.
func (s *State) Notes() []domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Note, len(s.notes))
	for i, n := range s.notes {
		n.Tags = slices.Clone(n.Tags)
		out[i] = n
	}
	return out
}

// Weights returns a copy of the cached weight history sorted by date.
func (s *State) Weights() []domain.WeightRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SortWeights(s.weights)
}

func (s *State) fail(op string, err error) error {
	s.logger.Error("diary sync failed", "op", op, "err", err)
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	return err
}

func (s *State) ok() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

// AddEvent creates e on the server. A placeholder is visible in Events
// while the request is in flight.
func (s *State) AddEvent(ctx context.Context, e domain.CalendarEvent) (*domain.CalendarEvent, error) {
	tmp := provisionalID()
	e.ID = tmp
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()

	created, err := s.api.CreateEvent(ctx, e)

	s.mu.Lock()
	if err == nil {
		s.events = replaceByID(s.events, tmp, *created, func(e domain.CalendarEvent) string { return e.ID })
	} else {
		s.events = removeByID(s.events, tmp, func(e domain.CalendarEvent) string { return e.ID })
	}
	s.mu.Unlock()
	if err != nil {
		return nil, s.fail("create event", err)
	}
	s.ok()
	return created, nil
}

// EditEvent sends patch and applies it to the cached event in the same
// normalized form the server stores.
func (s *State) EditEvent(ctx context.Context, id string, patch domain.EventPatch) error {
	patch, err := patch.Normalize()
	if err != nil {
		return s.fail("update event", err)
	}
	if err := s.api.UpdateEvent(ctx, id, patch); err != nil {
		return s.fail("update event", err)
	}
	s.mu.Lock()
	for i := range s.events {
		if s.events[i].ID == id {
			patch.Apply(&s.events[i])
		}
	}
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// RemoveEvent deletes the event and drops it from the cache.
func (s *State) RemoveEvent(ctx context.Context, id string) error {
	if _, err := s.api.DeleteEvent(ctx, id); err != nil {
		return s.fail("delete event", err)
	}
	s.mu.Lock()
	s.events = removeByID(s.events, id, func(e domain.CalendarEvent) string { return e.ID })
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// AddNote creates n on the server. New notes go to the front.
func (s *State) AddNote(ctx context.Context, n domain.Note) (*domain.Note, error) {
	tmp := provisionalID()
	n.ID = tmp
	n.Tags = domain.NormalizeTags(n.Tags)
	s.mu.Lock()
	s.notes = slices.Insert(s.notes, 0, n)
	s.mu.Unlock()

	created, err := s.api.CreateNote(ctx, n)

	s.mu.Lock()
	if err == nil {
		s.notes = replaceByID(s.notes, tmp, *created, func(n domain.Note) string { return n.ID })
	} else {
		s.notes = removeByID(s.notes, tmp, func(n domain.Note) string { return n.ID })
	}
	s.mu.Unlock()
	if err != nil {
		return nil, s.fail("create note", err)
	}
	s.ok()
	return created, nil
}

// EditNote sends patch and applies it to the cached note. The note keeps
// its date.
func (s *State) EditNote(ctx context.Context, id string, patch domain.NotePatch) error {
	patch, err := patch.Normalize()
	if err != nil {
		return s.fail("update note", err)
	}
	if err := s.api.UpdateNote(ctx, id, patch); err != nil {
		return s.fail("update note", err)
	}
	s.mu.Lock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			patch.Apply(&s.notes[i])
		}
	}
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// RemoveNote deletes the note and drops it from the cache.
func (s *State) RemoveNote(ctx context.Context, id string) error {
	if _, err := s.api.DeleteNote(ctx, id); err != nil {
		return s.fail("delete note", err)
	}
	s.mu.Lock()
	s.notes = removeByID(s.notes, id, func(n domain.Note) string { return n.ID })
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// AddWeight records w on the server.
func (s *State) AddWeight(ctx context.Context, w domain.WeightRecord) (*domain.WeightRecord, error) {
	tmp := provisionalID()
	w.ID = tmp
	s.mu.Lock()
	s.weights = append(s.weights, w)
	s.mu.Unlock()

	created, err := s.api.AddWeight(ctx, w)

	s.mu.Lock()
	if err == nil {
		s.weights = replaceByID(s.weights, tmp, *created, func(w domain.WeightRecord) string { return w.ID })
	} else {
		s.weights = removeByID(s.weights, tmp, func(w domain.WeightRecord) string { return w.ID })
	}
	s.mu.Unlock()
	if err != nil {
		return nil, s.fail("create weight", err)
	}
	s.ok()
	return created, nil
}

// RemoveWeight deletes the weight record and drops it from the cache.
func (s *State) RemoveWeight(ctx context.Context, id string) error {
	if _, err := s.api.DeleteWeight(ctx, id); err != nil {
		return s.fail("delete weight", err)
	}
	s.mu.Lock()
	s.weights = removeByID(s.weights, id, func(w domain.WeightRecord) string { return w.ID })
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// replaceByID swaps the item with the given id for v. When that item is gone,
// because a Load replaced the slice meanwhile, v is appended unless the
// reload already brought it in.
func replaceByID[T any](items []T, id string, v T, idOf func(T) string) []T {
	for i := range items {
		if idOf(items[i]) == id {
			items[i] = v
			return items
		}
	}
	if slices.ContainsFunc(items, func(x T) bool { return idOf(x) == idOf(v) }) {
		return items
	}
	return append(items, v)
}

func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	return slices.DeleteFunc(items, func(v T) bool { return idOf(v) == id })
}
