package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"petdiary/internal/app"
	"petdiary/internal/domain"
)

// Messages returned by Advisor.Ask in place of an answer.
const (
	MsgNoKey          = "Access error: no access key configured."
	MsgMisconfigured  = "Server error: API_KEY is not configured on the server."
	MsgUnavailable    = "Sorry, the assistant could not be reached."
	MsgNetwork        = "Network error while contacting the AI service."
	MsgEmpty          = "Could not get an answer."
	missingAPIKeyHint = "Missing API_KEY"
)

// Advisor asks the advisory endpoint about the pet using the cached diary
// as context.
type Advisor struct {
	api     *API
	state   *State
	profile app.Profile
	logger  *log.Logger
}

// NewAdvisor creates an Advisor. A nil logger uses the default logger.
func NewAdvisor(api *API, state *State, profile app.Profile, logger *log.Logger) *Advisor {
	if logger == nil {
		logger = log.Default()
	}
	return &Advisor{api: api, state: state, profile: profile, logger: logger}
}

// Ask returns the assistant's answer to question, or one of the Msg*
// messages when no answer could be obtained.
func (a *Advisor) Ask(ctx context.Context, question string) string {
	if !a.api.HasKey() {
		return MsgNoKey
	}

	prompt := BuildPrompt(a.profile, question, a.state.Events(), a.state.Notes(), a.state.Weights())
	text, err := a.api.Ask(ctx, prompt)
	if err != nil {
		a.logger.Error("advisor request failed", "err", err)
		var se *StatusError
		if !errors.As(err, &se) {
			return MsgNetwork
		}
		if se.Code == http.StatusInternalServerError && strings.Contains(se.Message, missingAPIKeyHint) {
			return MsgMisconfigured
		}
		return MsgUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return MsgEmpty
	}
	return text
}

// BuildPrompt assembles the context bundle sent to the model.
func BuildPrompt(p app.Profile, question string, events []domain.CalendarEvent, notes []domain.Note, weights []domain.WeightRecord) string {
	weights = domain.SortWeights(weights)
	latest := "no data"
	if w := domain.LatestWeight(weights); w != nil {
		latest = fmt.Sprintf("%dg (%s)", w.Weight, w.Date)
	}

	var b strings.Builder
	b.WriteString("You are a friendly and qualified veterinary assistant.\n\n")
	b.WriteString("Patient data:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Species: %s\n", p.Species)
	fmt.Fprintf(&b, "- Date of birth: %s\n", p.BirthDate.Format(domain.DayLayout))
	fmt.Fprintf(&b, "- Latest weight: %s\n", latest)
	fmt.Fprintf(&b, "- Weight history: %s\n", compactJSON(weights))
	fmt.Fprintf(&b, "- Events and medical records: %s\n", compactJSON(events))
	fmt.Fprintf(&b, "- Owner's notes: %s\n\n", compactJSON(notes))
	fmt.Fprintf(&b, "Owner's question: %q\n\n", question)
	b.WriteString("Give a short, useful answer. If the weight gain looks good, say so. ")
	b.WriteString("Keep the tone warm and reassuring. ")
	b.WriteString("If this is a serious medical issue, advise seeing a vet in person.\n")
	return b.String()
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return "[]"
	}
	return string(b)
}
