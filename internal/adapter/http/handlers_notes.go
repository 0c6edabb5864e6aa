package adapthttp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"petdiary/internal/domain"
)

type noteCreateRequest struct {
	ID      string   `json:"id"`
	Date    string   `json:"date"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type noteUpdateRequest struct {
	ID string `json:"id"`
	domain.NotePatch
	// Date is accepted so clients can send whole records back; it is never
	// written.
	Date json.RawMessage `json:"date,omitempty"`
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		notes, err := s.notes.List(ctx)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, notes)

	case http.MethodPost:
		var body noteCreateRequest
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		date, err := parseNoteDate(body.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := s.notes.Create(ctx, domain.Note{Date: date, Content: body.Content, Tags: body.Tags})
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case http.MethodPut:
		var body noteUpdateRequest
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.notes.Update(ctx, body.ID, body.NotePatch); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})

	case http.MethodDelete:
		s.deleteByID(w, r, s.notes.Delete)

	default:
		methodNotAllowed(w)
	}
}

// parseNoteDate accepts an RFC 3339 timestamp or a bare day. Empty means
// "now" and is left to the service.
func parseNoteDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := domain.ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid note date: %w", err)
	}
	return t, nil
}
