package adapthttp

import (
	"net/http"

	"petdiary/internal/domain"
)

func (s *Server) handleWeights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		ws, err := s.weights.List(ctx)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, ws)

	case http.MethodPost:
		var body domain.WeightRecord
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := s.weights.Record(ctx, body)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case http.MethodDelete:
		s.deleteByID(w, r, s.weights.Delete)

	// Weight records are never edited, so PUT falls through to 405.
	default:
		methodNotAllowed(w)
	}
}
