package adapthttp

import (
	"net/http"
)

// handleAI checks the model credential before the method so a misconfigured
// server is reported even to clients probing with GET.
func (s *Server) handleAI(w http.ResponseWriter, r *http.Request) {
	if err := s.advice.Ready(); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	text, err := s.advice.Ask(r.Context(), body.Prompt)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"text": text})
}
