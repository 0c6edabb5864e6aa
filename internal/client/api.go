// Package client talks to a running diary server. API is the typed HTTP
// client, State mirrors the collections locally and Advisor wraps the
// advisory endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"petdiary/internal/app"
	"petdiary/internal/domain"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// API is a typed client for the /api endpoints.
type API struct {
	baseURL    string
	key        string
	httpClient *http.Client
}

// NewAPI creates a client for the server at baseURL. A nil httpClient gets a
// client with a 30 second timeout.
func NewAPI(baseURL, key string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		key:        key,
		httpClient: httpClient,
	}
}

// HasKey reports whether an access key is configured.
func (a *API) HasKey() bool {
	return a.key != ""
}

func (a *API) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", a.key)

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+"/api"+path+"?"+query.Encode(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

type deleteResponse struct {
	Success bool `json:"success"`
	Deleted bool `json:"deleted"`
}

func (a *API) deleteByID(ctx context.Context, path, id string) (bool, error) {
	var out deleteResponse
	err := a.do(ctx, http.MethodDelete, path, url.Values{"id": {id}}, nil, &out)
	return out.Deleted, err
}

// ListEvents fetches every calendar event.
func (a *API) ListEvents(ctx context.Context) ([]domain.CalendarEvent, error) {
	var out []domain.CalendarEvent
	if err := a.do(ctx, http.MethodGet, "/events", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateEvent stores e and returns it with its assigned id.
func (a *API) CreateEvent(ctx context.Context, e domain.CalendarEvent) (*domain.CalendarEvent, error) {
	e.ID = ""
	var out domain.CalendarEvent
	if err := a.do(ctx, http.MethodPost, "/events", nil, e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEvent sends the fields set in patch.
func (a *API) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) error {
	body := struct {
		ID string `json:"id"`
		domain.EventPatch
	}{id, patch}
	return a.do(ctx, http.MethodPut, "/events", nil, body, nil)
}

// DeleteEvent removes the event with the given id.
func (a *API) DeleteEvent(ctx context.Context, id string) (bool, error) {
	return a.deleteByID(ctx, "/events", id)
}

// ListNotes fetches every note, newest first.
func (a *API) ListNotes(ctx context.Context) ([]domain.Note, error) {
	var out []domain.Note
	if err := a.do(ctx, http.MethodGet, "/notes", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateNote stores n and returns it with its assigned id.
func (a *API) CreateNote(ctx context.Context, n domain.Note) (*domain.Note, error) {
	body := struct {
		Date    string   `json:"date,omitempty"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}{Content: n.Content, Tags: domain.NormalizeTags(n.Tags)}
	if !n.Date.IsZero() {
		body.Date = n.Date.UTC().Format(time.RFC3339Nano)
	}
	var out domain.Note
	if err := a.do(ctx, http.MethodPost, "/notes", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNote sends the fields set in patch.
func (a *API) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) error {
	body := struct {
		ID string `json:"id"`
		domain.NotePatch
	}{id, patch}
	return a.do(ctx, http.MethodPut, "/notes", nil, body, nil)
}

// DeleteNote removes the note with the given id.
func (a *API) DeleteNote(ctx context.Context, id string) (bool, error) {
	return a.deleteByID(ctx, "/notes", id)
}

// ListWeights fetches the weight history.
func (a *API) ListWeights(ctx context.Context) ([]domain.WeightRecord, error) {
	var out []domain.WeightRecord
	if err := a.do(ctx, http.MethodGet, "/weights", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddWeight stores w and returns it with its assigned id.
func (a *API) AddWeight(ctx context.Context, w domain.WeightRecord) (*domain.WeightRecord, error) {
	w.ID = ""
	var out domain.WeightRecord
	if err := a.do(ctx, http.MethodPost, "/weights", nil, w, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWeight removes the weight record with the given id.
func (a *API) DeleteWeight(ctx context.Context, id string) (bool, error) {
	return a.deleteByID(ctx, "/weights", id)
}

// Ask sends prompt to the advisory endpoint.
func (a *API) Ask(ctx context.Context, prompt string) (string, error) {
	var out struct {
		Text string `json:"text"`
	}
	if err := a.do(ctx, http.MethodPost, "/ai", nil, map[string]string{"prompt": prompt}, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

// Summary fetches the dashboard overview.
func (a *API) Summary(ctx context.Context) (*app.Summary, error) {
	var out app.Summary
	if err := a.do(ctx, http.MethodGet, "/summary", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WeightSeries fetches the weight chart in unit.
func (a *API) WeightSeries(ctx context.Context, unit string) ([]app.WeightPoint, error) {
	var out struct {
		Items []app.WeightPoint `json:"items"`
	}
	if err := a.do(ctx, http.MethodGet, "/charts/weight", url.Values{"unit": {unit}}, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
