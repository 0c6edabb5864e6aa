package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"petdiary/internal/app"
	"petdiary/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(16)

	valueStyle = lipgloss.NewStyle().Bold(true)

	gainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// DashboardCmd prints the pet's age, weight and upcoming events.
type DashboardCmd struct{}

// Run fetches the summary and renders it.
func (c *DashboardCmd) Run(ctx *Context) error {
	api, err := ctx.API()
	if err != nil {
		return err
	}
	sum, err := api.Summary(context.Background())
	if err != nil {
		return err
	}
	ctx.printf("%s\n", RenderSummary(sum))
	return nil
}

// RenderSummary formats the dashboard card.
func RenderSummary(sum *app.Summary) string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
	}

	current := "no data"
	if sum.Latest != nil {
		current = fmt.Sprintf("%d g (%s)", sum.Latest.Weight, sum.Latest.Date)
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s the %s", sum.Name, sum.Species)),
		row("Born", sum.BirthDate),
		row("Age", sum.AgeText),
		row("Current weight", current),
	}
	if sum.GainSince != "" {
		lines = append(lines, row("Gained", gainStyle.Render(fmt.Sprintf("%+d g since %s", sum.Gain, sum.GainSince))))
	}

	lines = append(lines, "", titleStyle.Render("Upcoming"))
	if len(sum.Upcoming) == 0 {
		lines = append(lines, labelStyle.UnsetWidth().Render("nothing planned"))
	}
	for _, e := range sum.Upcoming {
		lines = append(lines, row(e.Date, fmt.Sprintf("%s [%s]", e.Title, e.Type)))
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}

func formatEvent(e domain.CalendarEvent, now time.Time) string {
	mark := " "
	if e.Completed(now) {
		mark = "x"
	}
	s := fmt.Sprintf("[%s] %s  %-10s  %s", mark, e.Date, e.Type, e.Title)
	if e.Description != "" {
		s += " - " + e.Description
	}
	return s + "  (" + e.ID + ")"
}
