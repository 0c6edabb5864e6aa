package app

import (
	"context"
	"time"

	"petdiary/internal/domain"
)

// UpcomingLimit is how many upcoming events the dashboard summary shows.
const UpcomingLimit = 2

// Profile describes the pet the diary is about.
type Profile struct {
	Name        string
	Species     string
	BirthDate   time.Time
	FallbackNow time.Time
}

// Age returns the pet's age at now.
func (p Profile) Age(now time.Time) domain.AgeParts {
	return domain.ComputeAge(p.BirthDate, now, p.FallbackNow)
}

// ChartsService builds the read models behind the dashboard cards and the
// weight chart.
type ChartsService struct {
	weightRepo domain.WeightRepository
	eventRepo  domain.EventRepository
	profile    Profile
}

// NewChartsService creates a ChartsService backed by the given repositories.
func NewChartsService(wr domain.WeightRepository, er domain.EventRepository, profile Profile) *ChartsService {
	return &ChartsService{weightRepo: wr, eventRepo: er, profile: profile}
}

// WeightPoint is a single data point returned by WeightSeries.
type WeightPoint struct {
	ID    string  `json:"id"`
	Date  string  `json:"date"`
	Grams int     `json:"grams"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	// Gain is grams gained since the first weighing.
	Gain int `json:"gain"`
}

// WeightSeries returns the weight history ordered by date, with values
// converted to the requested unit.
func (s *ChartsService) WeightSeries(ctx context.Context, unit string) ([]WeightPoint, error) {
	if !domain.ValidUnit(unit) {
		return nil, invalid("unit must be \"g\", \"kg\" or \"lb\"")
	}
	ws, err := s.weightRepo.ListWeights(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	sorted := domain.SortWeights(ws)
	points := make([]WeightPoint, 0, len(sorted))
	for _, w := range sorted {
		points = append(points, WeightPoint{
			ID:    w.ID,
			Date:  w.Date,
			Grams: w.Weight,
			Value: domain.ConvertGrams(w.Weight, unit),
			Unit:  unit,
			Gain:  w.Weight - sorted[0].Weight,
		})
	}
	return points, nil
}

// Summary is the dashboard overview.
type Summary struct {
	Name      string                 `json:"name"`
	Species   string                 `json:"species"`
	BirthDate string                 `json:"birthDate"`
	Age       domain.AgeParts        `json:"age"`
	AgeText   string                 `json:"ageText"`
	Latest    *domain.WeightRecord   `json:"latest"`
	Gain      int                    `json:"gain"`
	GainSince string                 `json:"gainSince,omitempty"`
	Upcoming  []domain.CalendarEvent `json:"upcoming"`
}

// Summary computes the dashboard overview at now.
func (s *ChartsService) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	ws, err := s.weightRepo.ListWeights(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	events, err := s.eventRepo.ListEvents(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	age := s.profile.Age(now)
	sum := &Summary{
		Name:      s.profile.Name,
		Species:   s.profile.Species,
		BirthDate: s.profile.BirthDate.Format(domain.DayLayout),
		Age:       age,
		AgeText:   age.String(),
		Latest:    domain.LatestWeight(ws),
		Gain:      domain.WeightGain(ws),
		Upcoming:  domain.UpcomingEvents(events, now, UpcomingLimit),
	}
	if len(ws) > 0 {
		sum.GainSince = domain.SortWeights(ws)[0].Date
	}
	return sum, nil
}
