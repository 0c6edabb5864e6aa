package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Note is a free-text diary entry. Date is the creation time and does not
// change on edits.
type Note struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Content string    `json:"content"`
	Tags    []string  `json:"tags"`
}

// NotePatch lists the fields of an update. Nil fields are left unchanged;
// the creation date is not patchable.
type NotePatch struct {
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p NotePatch) Empty() bool {
	return p.Content == nil && p.Tags == nil
}

// Normalize returns the patch in the form stores keep it: content trimmed
// and tags normalized. Blank content is an error.
func (p NotePatch) Normalize() (NotePatch, error) {
	if p.Content != nil {
		c := strings.TrimSpace(*p.Content)
		if c == "" {
			return p, errors.New("content cannot be empty")
		}
		p.Content = &c
	}
	if p.Tags != nil {
		tags := NormalizeTags(*p.Tags)
		p.Tags = &tags
	}
	return p, nil
}

// Apply merges the patch into n.
func (p NotePatch) Apply(n *Note) {
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Tags != nil {
		n.Tags = NormalizeTags(*p.Tags)
	}
}

// SplitTags splits a comma separated tag list.
func SplitTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// NormalizeTags trims every tag and drops blanks and repeats, keeping the
// order of first occurrence. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// NoteRepository is the port for note persistence.
type NoteRepository interface {
	ListNotes(ctx context.Context) ([]Note, error)
	CreateNote(ctx context.Context, n Note) (*Note, error)
	UpdateNote(ctx context.Context, id string, patch NotePatch) error
	DeleteNote(ctx context.Context, id string) (bool, error)
}
