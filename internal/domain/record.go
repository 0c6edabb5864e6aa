// Package domain contains the core business entities and interfaces.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DayLayout is the wire format of calendar days.
const DayLayout = "2006-01-02"

// ErrNotFound is returned by repositories when no record matches the id.
var ErrNotFound = errors.New("record not found")

// ParseDay parses a calendar day in UTC. Timestamps with a time component
// are accepted and truncated to their day.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// NormalizeDay trims s and reduces it to its YYYY-MM-DD day.
func NormalizeDay(s string) (string, error) {
	t, err := ParseDay(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return t.Format(DayLayout), nil
}

// dayInstant is ParseDay for values already validated; unparsable days sort
// as the zero time.
func dayInstant(s string) time.Time {
	t, _ := ParseDay(s)
	return t
}
