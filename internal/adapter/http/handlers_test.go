package adapthttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	adapthttp "petdiary/internal/adapter/http"
	"petdiary/internal/adapter/memory"
	"petdiary/internal/app"
	"petdiary/internal/domain"
)

const testKey = "let-me-in"

// ---------------------------------------------------------------------------
// Mocks (function-fields pattern)
// ---------------------------------------------------------------------------

type mockWeightRepo struct {
	listFn func(ctx context.Context) ([]domain.WeightRecord, error)
}

func (m *mockWeightRepo) ListWeights(ctx context.Context) ([]domain.WeightRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockWeightRepo) AddWeight(_ context.Context, w domain.WeightRecord) (*domain.WeightRecord, error) {
	w.ID = "w1"
	return &w, nil
}

func (m *mockWeightRepo) DeleteWeight(context.Context, string) (bool, error) {
	return true, nil
}

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ---------------------------------------------------------------------------
// Test-server helper
// ---------------------------------------------------------------------------

type testDeps struct {
	weights domain.WeightRepository
	gen     app.TextGenerator
	gate    *app.AccessGate
	logger  *log.Logger
}

func newTestServer(t *testing.T, deps testDeps) *httptest.Server {
	t.Helper()

	store := memory.New()
	wr := deps.weights
	if wr == nil {
		wr = store
	}
	gate := deps.gate
	if gate == nil {
		gate = app.NewAccessGate(testKey, "")
	}
	logger := deps.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	profile := app.Profile{
		Name:        "Finik",
		Species:     "cat",
		BirthDate:   time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
		FallbackNow: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
	}
	svc := adapthttp.Services{
		Events:  app.NewEventService(store),
		Notes:   app.NewNoteService(store),
		Weights: app.NewWeightService(wr),
		Charts:  app.NewChartsService(wr, store, profile),
		Advice:  app.NewAdviceService(deps.gen),
	}

	webDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(webDir, "index.html"), []byte("<html>diary</html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	now := func() time.Time { return time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC) }
	srv := adapthttp.New(svc, gate, logger, webDir).WithClock(now)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func withKey(ts *httptest.Server, path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return ts.URL + path + sep + "key=" + testKey
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return m
}

func decodeInto(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected %d, got %d; body: %s", want, resp.StatusCode, b)
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := do(t, http.MethodGet, ts.URL+"/api/health", nil)
	expectStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	if body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
}

func TestKeyRequired(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	tests := []struct {
		name   string
		method string
		url    string
	}{
		{"GET events no key", http.MethodGet, ts.URL + "/api/events"},
		{"GET notes wrong key", http.MethodGet, ts.URL + "/api/notes?key=nope"},
		{"GET weights no key", http.MethodGet, ts.URL + "/api/weights"},
		{"PATCH weights wrong key", http.MethodPatch, ts.URL + "/api/weights?key=nope"},
		{"POST ai no key", http.MethodPost, ts.URL + "/api/ai"},
		{"GET summary no key", http.MethodGet, ts.URL + "/api/summary"},
		{"GET chart wrong key", http.MethodGet, ts.URL + "/api/charts/weight?key=nope"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, tc.method, tc.url, nil)
			expectStatus(t, resp, http.StatusUnauthorized)
			if body := decodeBody(t, resp); body["error"] != "Unauthorized" {
				t.Fatalf("unexpected error body: %v", body)
			}
		})
	}
}

func TestUnauthorizedHasNoSideEffect(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	// Invalid payload too: the key is checked before the body is looked at.
	resp := do(t, http.MethodPost, ts.URL+"/api/weights?key=nope", map[string]any{"date": "2025-10-23", "weight": 1100})
	expectStatus(t, resp, http.StatusUnauthorized)
	resp = do(t, http.MethodPost, ts.URL+"/api/events?key=nope", map[string]any{"bogus": true})
	expectStatus(t, resp, http.StatusUnauthorized)

	resp = do(t, http.MethodGet, withKey(ts, "/api/weights"), nil)
	expectStatus(t, resp, http.StatusOK)
	var ws []domain.WeightRecord
	decodeInto(t, resp, &ws)
	if len(ws) != 0 {
		t.Fatalf("expected no weights, got %+v", ws)
	}
}

func TestMissingAccessKeyConfig(t *testing.T) {
	ts := newTestServer(t, testDeps{gate: app.NewAccessGate("", "")})

	resp := do(t, http.MethodGet, ts.URL+"/api/events?key=anything", nil)
	expectStatus(t, resp, http.StatusInternalServerError)
	body := decodeBody(t, resp)
	if msg, _ := body["error"].(string); !strings.Contains(msg, "Missing ACCESS_KEY") {
		t.Fatalf("expected Missing ACCESS_KEY, got %v", body)
	}
}

func TestBcryptAccessKey(t *testing.T) {
	hash, err := app.HashAccessKey(testKey)
	if err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, testDeps{gate: app.NewAccessGate("", hash)})

	resp := do(t, http.MethodGet, withKey(ts, "/api/events"), nil)
	expectStatus(t, resp, http.StatusOK)
}

func TestWeightsGain(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	// Posted out of order on purpose.
	for _, p := range []map[string]any{
		{"date": "2025-11-20", "weight": 2120},
		{"date": "2025-10-23", "weight": 1100},
	} {
		resp := do(t, http.MethodPost, withKey(ts, "/api/weights"), p)
		expectStatus(t, resp, http.StatusCreated)
		var created domain.WeightRecord
		decodeInto(t, resp, &created)
		if created.ID == "" {
			t.Fatal("expected store-assigned id")
		}
	}

	resp := do(t, http.MethodGet, withKey(ts, "/api/weights"), nil)
	expectStatus(t, resp, http.StatusOK)
	var ws []domain.WeightRecord
	decodeInto(t, resp, &ws)
	if len(ws) != 2 || ws[0].Date != "2025-10-23" {
		t.Fatalf("expected weights sorted by date, got %+v", ws)
	}
	if gain := domain.WeightGain(ws); gain != 1020 {
		t.Fatalf("expected gain 1020, got %d", gain)
	}
}

func TestWeightsValidation(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"zero weight", map[string]any{"date": "2025-10-23", "weight": 0}},
		{"negative weight", map[string]any{"date": "2025-10-23", "weight": -5}},
		{"bad date", map[string]any{"date": "23.10.2025", "weight": 1100}},
		{"unknown field", map[string]any{"date": "2025-10-23", "weight": 1100, "unit": "kg"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, withKey(ts, "/api/weights"), tc.payload)
			expectStatus(t, resp, http.StatusBadRequest)
		})
	}
}

func TestEventPartialUpdate(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := do(t, http.MethodPost, withKey(ts, "/api/events"), map[string]any{
		"id":          "client-side-id",
		"date":        "2025-12-15",
		"title":       "Vaccination",
		"description": "First combined shot",
		"type":        "vaccine",
	})
	expectStatus(t, resp, http.StatusCreated)
	var created domain.CalendarEvent
	decodeInto(t, resp, &created)
	if created.ID == "" || created.ID == "client-side-id" {
		t.Fatalf("expected store-assigned id, got %q", created.ID)
	}

	resp = do(t, http.MethodPut, withKey(ts, "/api/events"), map[string]any{"id": created.ID, "title": "Updated"})
	expectStatus(t, resp, http.StatusOK)
	if body := decodeBody(t, resp); body["success"] != true {
		t.Fatalf("expected success, got %v", body)
	}

	resp = do(t, http.MethodGet, withKey(ts, "/api/events"), nil)
	var events []domain.CalendarEvent
	decodeInto(t, resp, &events)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Title != "Updated" || e.Date != "2025-12-15" || e.Type != domain.EventVaccine || e.Description != "First combined shot" {
		t.Fatalf("unexpected event after update: %+v", e)
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := do(t, http.MethodPut, withKey(ts, "/api/events"), map[string]any{"id": "ghost", "title": "Updated"})
	expectStatus(t, resp, http.StatusNotFound)

	resp = do(t, http.MethodPut, withKey(ts, "/api/notes"), map[string]any{"id": "ghost", "content": "x"})
	expectStatus(t, resp, http.StatusNotFound)

	resp = do(t, http.MethodPut, withKey(ts, "/api/events"), map[string]any{"title": "no id"})
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestDeleteIdempotent(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := do(t, http.MethodPost, withKey(ts, "/api/weights"), map[string]any{"date": "2025-10-23", "weight": 1100})
	var created domain.WeightRecord
	decodeInto(t, resp, &created)

	for i, want := range []bool{true, false} {
		resp := do(t, http.MethodDelete, withKey(ts, "/api/weights?id="+created.ID), nil)
		expectStatus(t, resp, http.StatusOK)
		body := decodeBody(t, resp)
		if body["success"] != true || body["deleted"] != want {
			t.Fatalf("delete #%d: unexpected body %v", i+1, body)
		}
	}

	resp = do(t, http.MethodGet, withKey(ts, "/api/weights"), nil)
	var ws []domain.WeightRecord
	decodeInto(t, resp, &ws)
	if len(ws) != 0 {
		t.Fatalf("expected record gone, got %+v", ws)
	}
}

func TestDeleteWithoutID(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	for _, path := range []string{"/api/events", "/api/notes", "/api/weights"} {
		resp := do(t, http.MethodDelete, withKey(ts, path), nil)
		expectStatus(t, resp, http.StatusBadRequest)
	}
}

func TestNotes(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := do(t, http.MethodPost, withKey(ts, "/api/notes"), map[string]any{
		"date":    "2025-11-01T10:00:00Z",
		"content": "Loves the fur mouse",
		"tags":    []string{" toys ", "", "toys", "mood"},
	})
	expectStatus(t, resp, http.StatusCreated)
	var created domain.Note
	decodeInto(t, resp, &created)
	if len(created.Tags) != 2 || created.Tags[0] != "toys" || created.Tags[1] != "mood" {
		t.Fatalf("unexpected tags: %v", created.Tags)
	}

	// Clients send whole records back; the date must survive.
	resp = do(t, http.MethodPut, withKey(ts, "/api/notes"), map[string]any{
		"id":      created.ID,
		"date":    "2030-01-01T00:00:00Z",
		"content": "Carries the fur mouse like a dog",
	})
	expectStatus(t, resp, http.StatusOK)

	resp = do(t, http.MethodGet, withKey(ts, "/api/notes"), nil)
	var notes []domain.Note
	decodeInto(t, resp, &notes)
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	n := notes[0]
	want := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)
	if !n.Date.Equal(want) || n.Content != "Carries the fur mouse like a dog" || len(n.Tags) != 2 {
		t.Fatalf("unexpected note after update: %+v", n)
	}

	resp = do(t, http.MethodPost, withKey(ts, "/api/notes"), map[string]any{"content": "   "})
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestDatabaseError(t *testing.T) {
	ts := newTestServer(t, testDeps{weights: &mockWeightRepo{
		listFn: func(context.Context) ([]domain.WeightRecord, error) {
			return nil, errors.New("connection refused")
		},
	}})

	resp := do(t, http.MethodGet, withKey(ts, "/api/weights"), nil)
	expectStatus(t, resp, http.StatusInternalServerError)
	body := decodeBody(t, resp)
	if body["error"] != "Database error" {
		t.Fatalf("expected fixed message, got %v", body)
	}
}

func TestAI(t *testing.T) {
	t.Run("missing API key", func(t *testing.T) {
		ts := newTestServer(t, testDeps{})
		resp := do(t, http.MethodPost, withKey(ts, "/api/ai"), map[string]any{"prompt": "hi"})
		expectStatus(t, resp, http.StatusInternalServerError)
		body := decodeBody(t, resp)
		if msg, _ := body["error"].(string); !strings.Contains(msg, "Missing API_KEY") {
			t.Fatalf("expected Missing API_KEY, got %v", body)
		}
	})

	ok := generatorFunc(func(_ context.Context, prompt string) (string, error) {
		return "echo: " + prompt, nil
	})

	t.Run("wrong method", func(t *testing.T) {
		ts := newTestServer(t, testDeps{gen: ok})
		resp := do(t, http.MethodGet, withKey(ts, "/api/ai"), nil)
		expectStatus(t, resp, http.StatusMethodNotAllowed)
	})

	t.Run("missing prompt", func(t *testing.T) {
		ts := newTestServer(t, testDeps{gen: ok})
		resp := do(t, http.MethodPost, withKey(ts, "/api/ai"), map[string]any{})
		expectStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("answer", func(t *testing.T) {
		ts := newTestServer(t, testDeps{gen: ok})
		resp := do(t, http.MethodPost, withKey(ts, "/api/ai"), map[string]any{"prompt": "hi"})
		expectStatus(t, resp, http.StatusOK)
		if body := decodeBody(t, resp); body["text"] != "echo: hi" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		failing := generatorFunc(func(context.Context, string) (string, error) {
			return "", errors.New("quota exceeded")
		})
		ts := newTestServer(t, testDeps{gen: failing})
		resp := do(t, http.MethodPost, withKey(ts, "/api/ai"), map[string]any{"prompt": "hi"})
		expectStatus(t, resp, http.StatusInternalServerError)
		if body := decodeBody(t, resp); body["error"] != "AI Service Error" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestSummary(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	for _, p := range []map[string]any{
		{"date": "2025-10-23", "weight": 1100},
		{"date": "2025-11-20", "weight": 2120},
	} {
		expectStatus(t, do(t, http.MethodPost, withKey(ts, "/api/weights"), p), http.StatusCreated)
	}
	for _, p := range []map[string]any{
		{"date": "2025-11-30", "title": "Past", "type": "medical"},
		{"date": "2025-12-15", "title": "Vaccination", "type": "vaccine"},
		{"date": "2026-01-10", "title": "Deworming", "type": "deworming"},
		{"date": "2026-02-01", "title": "Later", "type": "other"},
	} {
		expectStatus(t, do(t, http.MethodPost, withKey(ts, "/api/events"), p), http.StatusCreated)
	}

	resp := do(t, http.MethodGet, withKey(ts, "/api/summary"), nil)
	expectStatus(t, resp, http.StatusOK)
	var sum app.Summary
	decodeInto(t, resp, &sum)

	if sum.Gain != 1020 || sum.GainSince != "2025-10-23" {
		t.Fatalf("unexpected gain: %d since %s", sum.Gain, sum.GainSince)
	}
	if sum.Latest == nil || sum.Latest.Weight != 2120 {
		t.Fatalf("unexpected latest: %+v", sum.Latest)
	}
	if sum.Age.Months != 4 || sum.Age.Years != 0 {
		t.Fatalf("unexpected age: %+v", sum.Age)
	}
	if len(sum.Upcoming) != 2 || sum.Upcoming[0].Title != "Vaccination" || sum.Upcoming[1].Title != "Deworming" {
		t.Fatalf("unexpected upcoming: %+v", sum.Upcoming)
	}
}

func TestChartsWeight(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	expectStatus(t, do(t, http.MethodPost, withKey(ts, "/api/weights"), map[string]any{"date": "2025-10-23", "weight": 1100}), http.StatusCreated)
	expectStatus(t, do(t, http.MethodPost, withKey(ts, "/api/weights"), map[string]any{"date": "2025-11-20", "weight": 2120}), http.StatusCreated)

	resp := do(t, http.MethodGet, withKey(ts, "/api/charts/weight?unit=kg"), nil)
	expectStatus(t, resp, http.StatusOK)
	var body struct {
		Unit  string            `json:"unit"`
		Items []app.WeightPoint `json:"items"`
	}
	decodeInto(t, resp, &body)
	if body.Unit != "kg" || len(body.Items) != 2 {
		t.Fatalf("unexpected chart: %+v", body)
	}
	if body.Items[1].Value != 2.12 || body.Items[1].Gain != 1020 {
		t.Fatalf("unexpected last point: %+v", body.Items[1])
	}

	resp = do(t, http.MethodGet, withKey(ts, "/api/charts/weight?unit=stone"), nil)
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, testDeps{gen: generatorFunc(func(context.Context, string) (string, error) { return "", nil })})

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"PATCH events", http.MethodPatch, "/api/events"},
		{"PATCH notes", http.MethodPatch, "/api/notes"},
		{"PUT weights", http.MethodPut, "/api/weights"},
		{"PUT ai", http.MethodPut, "/api/ai"},
		{"POST summary", http.MethodPost, "/api/summary"},
		{"DELETE charts/weight", http.MethodDelete, "/api/charts/weight"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, tc.method, withKey(ts, tc.path), nil)
			expectStatus(t, resp, http.StatusMethodNotAllowed)
		})
	}
}

func TestRestrictedPlaceholder(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := do(t, http.MethodGet, ts.URL+"/", nil)
	expectStatus(t, resp, http.StatusOK)
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), "Restricted access") {
		t.Fatalf("expected placeholder, got %s", b)
	}

	resp = do(t, http.MethodGet, ts.URL+"/?key=anything", nil)
	expectStatus(t, resp, http.StatusOK)
	b, _ = io.ReadAll(resp.Body)
	if string(b) != "<html>diary</html>" {
		t.Fatalf("expected index page, got %s", b)
	}
}
