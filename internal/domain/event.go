package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// EventType classifies a calendar event.
type EventType string

// Known event types.
const (
	EventMedical    EventType = "medical"
	EventLife       EventType = "life"
	EventVaccine    EventType = "vaccine"
	EventBirthday   EventType = "birthday"
	EventMedication EventType = "medication"
	EventDeworming  EventType = "deworming"
	EventOther      EventType = "other"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventMedical, EventLife, EventVaccine, EventBirthday, EventMedication, EventDeworming, EventOther:
		return true
	}
	return false
}

// CalendarEvent is a medical or life event on the pet's calendar.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        EventType `json:"type"`
	IsCompleted *bool     `json:"isCompleted,omitempty"`
}

// When returns the start of the event's day.
func (e CalendarEvent) When() time.Time {
	return dayInstant(e.Date)
}

// Completed returns the explicit completion flag, or whether the event's
// day lies before now when the flag is absent.
func (e CalendarEvent) Completed(now time.Time) bool {
	if e.IsCompleted != nil {
		return *e.IsCompleted
	}
	return e.When().Before(now)
}

// EventPatch lists the fields of an update. Nil fields are left unchanged.
type EventPatch struct {
	Date        *string    `json:"date,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Type        *EventType `json:"type,omitempty"`
	IsCompleted *bool      `json:"isCompleted,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Date == nil && p.Title == nil && p.Description == nil && p.Type == nil && p.IsCompleted == nil
}

// Normalize returns the patch in the form stores keep it: the title trimmed
// and the date reduced to its day. Set fields that cannot be stored are an
// error.
func (p EventPatch) Normalize() (EventPatch, error) {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return p, errors.New("title cannot be empty")
		}
		p.Title = &t
	}
	if p.Date != nil {
		day, err := NormalizeDay(*p.Date)
		if err != nil {
			return p, err
		}
		p.Date = &day
	}
	if p.Type != nil && !p.Type.Valid() {
		return p, fmt.Errorf("unknown event type %q", *p.Type)
	}
	return p, nil
}

// Apply merges the patch into e.
func (p EventPatch) Apply(e *CalendarEvent) {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.IsCompleted != nil {
		v := *p.IsCompleted
		e.IsCompleted = &v
	}
}

// EventRepository is the port for event persistence.
type EventRepository interface {
	ListEvents(ctx context.Context) ([]CalendarEvent, error)
	CreateEvent(ctx context.Context, e CalendarEvent) (*CalendarEvent, error)
	UpdateEvent(ctx context.Context, id string, patch EventPatch) error
	DeleteEvent(ctx context.Context, id string) (bool, error)
}
