package adapthttp

import (
	"context"
	"errors"
	"net/http"

	"petdiary/internal/domain"
)

type eventUpdateRequest struct {
	ID string `json:"id"`
	domain.EventPatch
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		events, err := s.events.List(ctx)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, events)

	case http.MethodPost:
		var body domain.CalendarEvent
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := s.events.Create(ctx, body)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case http.MethodPut:
		var body eventUpdateRequest
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.events.Update(ctx, body.ID, body.EventPatch); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})

	case http.MethodDelete:
		s.deleteByID(w, r, s.events.Delete)

	default:
		methodNotAllowed(w)
	}
}

// deleteByID handles DELETE ?id= for any collection. Deleting an unknown id
// succeeds with deleted=false.
func (s *Server) deleteByID(w http.ResponseWriter, r *http.Request, del func(context.Context, string) (bool, error)) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, errors.New("id is required"))
		return
	}
	deleted, err := del(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "deleted": deleted})
}
