package domain

import (
	"slices"
	"time"
)

// SortWeights returns a copy of ws ordered by date ascending. Records on the
// same day keep their relative order.
func SortWeights(ws []WeightRecord) []WeightRecord {
	out := slices.Clone(ws)
	slices.SortStableFunc(out, func(a, b WeightRecord) int {
		return a.When().Compare(b.When())
	})
	return out
}

// WeightGain returns the latest weight minus the earliest one, by date.
// Fewer than two records yield 0.
func WeightGain(ws []WeightRecord) int {
	if len(ws) < 2 {
		return 0
	}
	sorted := SortWeights(ws)
	return sorted[len(sorted)-1].Weight - sorted[0].Weight
}

// LatestWeight returns the chronologically last record, or nil.
func LatestWeight(ws []WeightRecord) *WeightRecord {
	if len(ws) == 0 {
		return nil
	}
	sorted := SortWeights(ws)
	w := sorted[len(sorted)-1]
	return &w
}

// SortEvents returns a copy of es ordered by date ascending.
func SortEvents(es []CalendarEvent) []CalendarEvent {
	out := slices.Clone(es)
	slices.SortStableFunc(out, func(a, b CalendarEvent) int {
		return a.When().Compare(b.When())
	})
	return out
}

// UpcomingEvents returns at most n events whose day starts at or after now,
// soonest first. n <= 0 means no limit.
func UpcomingEvents(es []CalendarEvent, now time.Time, n int) []CalendarEvent {
	out := make([]CalendarEvent, 0, len(es))
	for _, e := range es {
		if !e.When().Before(now) {
			out = append(out, e)
		}
	}
	out = SortEvents(out)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
