package domain_test

import (
	"testing"
	"time"

	"petdiary/internal/domain"
)

func TestWeightGain(t *testing.T) {
	tests := []struct {
		name string
		ws   []domain.WeightRecord
		want int
	}{
		{"empty", nil, 0},
		{"single", []domain.WeightRecord{{Date: "2025-10-23", Weight: 1100}}, 0},
		{"sorted", []domain.WeightRecord{
			{Date: "2025-10-23", Weight: 1100},
			{Date: "2025-11-20", Weight: 2120},
		}, 1020},
		{"unsorted input", []domain.WeightRecord{
			{Date: "2025-11-20", Weight: 2120},
			{Date: "2025-11-07", Weight: 1460},
			{Date: "2025-10-23", Weight: 1100},
		}, 1020},
		{"loss", []domain.WeightRecord{
			{Date: "2025-10-23", Weight: 1500},
			{Date: "2025-10-30", Weight: 1400},
		}, -100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.WeightGain(tc.ws); got != tc.want {
				t.Fatalf("WeightGain = %d; want %d", got, tc.want)
			}
		})
	}
}

func TestLatestWeight(t *testing.T) {
	if domain.LatestWeight(nil) != nil {
		t.Fatal("expected nil for empty history")
	}
	got := domain.LatestWeight([]domain.WeightRecord{
		{ID: "b", Date: "2025-11-20", Weight: 2120},
		{ID: "a", Date: "2025-10-23", Weight: 1100},
	})
	if got == nil || got.ID != "b" {
		t.Fatalf("unexpected latest: %+v", got)
	}
}

func TestUpcomingEvents(t *testing.T) {
	now := time.Date(2025, 11, 20, 15, 30, 0, 0, time.UTC)
	d := func(offset int) string { return now.AddDate(0, 0, offset).Format(domain.DayLayout) }
	events := []domain.CalendarEvent{
		{ID: "plus10", Date: d(10)},
		{ID: "yesterday", Date: d(-1)},
		{ID: "tomorrow", Date: d(1)},
		{ID: "today", Date: d(0)},
	}

	got := domain.UpcomingEvents(events, now, 2)
	if len(got) != 2 || got[0].ID != "tomorrow" || got[1].ID != "plus10" {
		t.Fatalf("unexpected upcoming events: %+v", got)
	}

	all := domain.SortEvents(events)
	want := []string{"yesterday", "today", "tomorrow", "plus10"}
	for i, e := range all {
		if e.ID != want[i] {
			t.Fatalf("SortEvents[%d] = %s; want %s", i, e.ID, want[i])
		}
	}
	if events[0].ID != "plus10" {
		t.Fatal("SortEvents must not reorder its input")
	}
}

func TestCalendarEventCompleted(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	yes, no := true, false
	tests := []struct {
		name string
		e    domain.CalendarEvent
		want bool
	}{
		{"past without flag", domain.CalendarEvent{Date: "2025-11-01"}, true},
		{"future without flag", domain.CalendarEvent{Date: "2025-12-15"}, false},
		{"future flagged done", domain.CalendarEvent{Date: "2025-12-15", IsCompleted: &yes}, true},
		{"past flagged open", domain.CalendarEvent{Date: "2025-11-01", IsCompleted: &no}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.e.Completed(now); got != tc.want {
				t.Fatalf("Completed = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	got := domain.SplitTags(" toys, character ,, toys,  ")
	want := []string{"toys", "character"}
	if len(got) != len(want) {
		t.Fatalf("SplitTags = %q; want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SplitTags = %q; want %q", got, want)
		}
	}
	if tags := domain.NormalizeTags(nil); tags == nil || len(tags) != 0 {
		t.Fatalf("NormalizeTags(nil) = %#v; want empty slice", tags)
	}
}

func TestEventPatchApply(t *testing.T) {
	e := domain.CalendarEvent{ID: "e1", Date: "2025-12-15", Title: "Vaccine", Description: "first shot", Type: domain.EventVaccine}
	title := "Updated"
	domain.EventPatch{Title: &title}.Apply(&e)
	if e.Title != "Updated" || e.Date != "2025-12-15" || e.Description != "first shot" || e.Type != domain.EventVaccine {
		t.Fatalf("unexpected event after patch: %+v", e)
	}
}

func TestEventPatchNormalize(t *testing.T) {
	title := "  Updated  "
	date := "2025-12-20T10:00:00Z"
	p, err := domain.EventPatch{Title: &title, Date: &date}.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *p.Title != "Updated" || *p.Date != "2025-12-20" {
		t.Fatalf("unexpected patch: title=%q date=%q", *p.Title, *p.Date)
	}
	if title != "  Updated  " {
		t.Fatalf("caller's title was modified: %q", title)
	}

	blank := "   "
	bad := "20.12.2025"
	kind := domain.EventType("party")
	tests := []struct {
		name  string
		patch domain.EventPatch
	}{
		{"blank title", domain.EventPatch{Title: &blank}},
		{"bad date", domain.EventPatch{Date: &bad}},
		{"unknown type", domain.EventPatch{Type: &kind}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.patch.Normalize(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNotePatchNormalize(t *testing.T) {
	content := " Loves the fur mouse "
	tags := []string{" toys", "", "toys"}
	p, err := domain.NotePatch{Content: &content, Tags: &tags}.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *p.Content != "Loves the fur mouse" || len(*p.Tags) != 1 || (*p.Tags)[0] != "toys" {
		t.Fatalf("unexpected patch: content=%q tags=%q", *p.Content, *p.Tags)
	}

	blank := " "
	if _, err := (domain.NotePatch{Content: &blank}).Normalize(); err == nil {
		t.Fatal("expected error for blank content")
	}
}
