// Package adapthttp is the driving HTTP adapter. It exposes the diary
// collections, the advisory endpoint and the dashboard read models under
// /api and serves the single-page UI from disk.
package adapthttp

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"petdiary/internal/app"
)

// Services bundles the application services the adapter routes to.
type Services struct {
	Events  *app.EventService
	Notes   *app.NoteService
	Weights *app.WeightService
	Charts  *app.ChartsService
	Advice  *app.AdviceService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	gate    *app.AccessGate
	events  *app.EventService
	notes   *app.NoteService
	weights *app.WeightService
	charts  *app.ChartsService
	advice  *app.AdviceService
	logger  *log.Logger
	webDir  string
	now     func() time.Time
}

// New creates a Server wired to the given application services. A nil logger
// falls back to the charmbracelet default logger.
func New(svc Services, gate *app.AccessGate, logger *log.Logger, webDir string) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		gate:    gate,
		events:  svc.Events,
		notes:   svc.Notes,
		weights: svc.Weights,
		charts:  svc.Charts,
		advice:  svc.Advice,
		logger:  logger,
		webDir:  webDir,
		now:     time.Now,
	}
}

// WithClock overrides the clock used for the dashboard summary.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.Handle("/events", s.requireKey(http.HandlerFunc(s.handleEvents)))
	api.Handle("/notes", s.requireKey(http.HandlerFunc(s.handleNotes)))
	api.Handle("/weights", s.requireKey(http.HandlerFunc(s.handleWeights)))
	api.Handle("/ai", s.requireKey(http.HandlerFunc(s.handleAI)))

	api.Handle("/summary", s.requireKey(http.HandlerFunc(s.handleSummary)))
	api.Handle("/charts/weight", s.requireKey(http.HandlerFunc(s.handleChartsWeight)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
