package cli

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"petdiary/internal/domain"
)

// EventCmd groups the calendar subcommands.
type EventCmd struct {
	Add  EventAddCmd  `cmd:"" help:"Add a calendar event."`
	Edit EventEditCmd `cmd:"" help:"Edit a calendar event."`
	Rm   EventRmCmd   `cmd:"" help:"Delete a calendar event."`
	Ls   EventLsCmd   `cmd:"" help:"List calendar events." default:"1"`
}

// EventAddCmd adds a calendar event.
type EventAddCmd struct {
	Date        string `arg:"" help:"Day of the event (YYYY-MM-DD)."`
	Title       string `arg:"" help:"Title."`
	Type        string `short:"t" default:"other" enum:"medical,life,vaccine,birthday,medication,deworming,other" help:"Event type."`
	Description string `short:"d" help:"Optional description."`
	Done        *bool  `help:"Mark as completed (default: completed once the day has passed)."`
}

// Run creates the event.
func (c *EventAddCmd) Run(ctx *Context) error {
	state, err := ctx.State()
	if err != nil {
		return err
	}
	e, err := state.AddEvent(context.Background(), domain.CalendarEvent{
		Date:        c.Date,
		Title:       c.Title,
		Type:        domain.EventType(c.Type),
		Description: c.Description,
		IsCompleted: c.Done,
	})
	if err != nil {
		return err
	}
	ctx.printf("Added %s\n", formatEvent(*e, time.Now()))
	return nil
}

// EventEditCmd updates the given fields of an event.
type EventEditCmd struct {
	ID          string  `arg:"" help:"Event id."`
	Date        *string `help:"New day (YYYY-MM-DD)."`
	Title       *string `help:"New title."`
	Type        *string `short:"t" help:"New type (medical, life, vaccine, birthday, medication, deworming, other)."`
	Description *string `short:"d" help:"New description."`
	Done        *bool   `help:"Set completion."`
}

// Run sends the patch.
func (c *EventEditCmd) Run(ctx *Context) error {
	patch := domain.EventPatch{Date: c.Date, Title: c.Title, Description: c.Description, IsCompleted: c.Done}
	if c.Type != nil {
		t := domain.EventType(*c.Type)
		patch.Type = &t
	}
	if patch.Empty() {
		return errors.New("nothing to change")
	}
	state, err := ctx.State()
	if err != nil {
		return err
	}
	if err := state.EditEvent(context.Background(), c.ID, patch); err != nil {
		return err
	}
	ctx.printf("Updated event %s\n", c.ID)
	return nil
}

// EventRmCmd deletes an event.
type EventRmCmd struct {
	ID string `arg:"" help:"Event id."`
}

// Run deletes the event.
func (c *EventRmCmd) Run(ctx *Context) error {
	state, err := ctx.State()
	if err != nil {
		return err
	}
	if err := state.RemoveEvent(context.Background(), c.ID); err != nil {
		return err
	}
	ctx.printf("Deleted event %s\n", c.ID)
	return nil
}

// EventLsCmd lists events in calendar order.
type EventLsCmd struct {
	Upcoming bool `short:"u" help:"Only events from today on."`
}

// Run prints the events.
func (c *EventLsCmd) Run(ctx *Context) error {
	state, err := ctx.State()
	if err != nil {
		return err
	}
	if err := state.Load(context.Background()); err != nil {
		return err
	}
	now := time.Now()
	events := state.Events()
	if c.Upcoming {
		y, m, d := now.UTC().Date()
		events = domain.UpcomingEvents(events, time.Date(y, m, d, 0, 0, 0, 0, time.UTC), 0)
	}
	if len(events) == 0 {
		ctx.printf("No events.\n")
	}
	for _, e := range events {
		ctx.printf("%s\n", formatEvent(e, now))
	}
	return nil
}

// NoteCmd groups the note subcommands.
type NoteCmd struct {
	Add  NoteAddCmd  `cmd:"" help:"Add a note."`
	Edit NoteEditCmd `cmd:"" help:"Edit a note."`
	Rm   NoteRmCmd   `cmd:"" help:"Delete a note."`
	Ls   NoteLsCmd   `cmd:"" help:"List notes, newest first." default:"1"`
}

// NoteAddCmd adds a note.
type NoteAddCmd struct {
	Content string `arg:"" help:"Note text."`
	Tags    string `help:"Comma separated tags."`
}

// Run creates the note.
func (c *NoteAddCmd) Run(ctx *Context) error {
	state, err := ctx.State()
	if err != nil {
		return err
	}
	n, err := state.AddNote(context.Background(), domain.Note{Content: c.Content, Tags: domain.SplitTags(c.Tags)})
	if err != nil {
		return err
	}
	ctx.printf("Added note %s\n", n.ID)
	return nil
}

// NoteEditCmd updates a note's content or tags.
type NoteEditCmd struct {
	ID      string  `arg:"" help:"Note id."`
	Content *string `help:"New text."`
	Tags    *string `help:"New comma separated tags (empty clears them)."`
}

// Run sends the patch.
func (c *NoteEditCmd) Run(ctx *Context) error {
	patch := domain.NotePatch{Content: c.Content}
	if c.Tags != nil {
		tags := domain.SplitTags(*c.Tags)
		patch.Tags = &tags
	}
	if patch.Empty() {
		return errors.New("nothing to change")
	}
	state, err := ctx.State()
	if err != nil {
		return err
	}
	if err := state.EditNote(context.Background(), c.ID, patch); err != nil {
		return err
	}
	ctx.printf("Updated note %s\n", c.ID)
	return nil
}

// NoteRmCmd deletes a note.
type NoteRmCmd struct {
	ID string `arg:"" help:"Note id."`
}

// Run deletes the note.
func (c *NoteRmCmd) Run(ctx *Context) error {
	state, err := ctx.State()
	if err != nil {
		return err
	}
	if err := state.RemoveNote(context.Background(), c.ID); err != nil {
		return err
	}
	ctx.printf("Deleted note %s\n", c.ID)
	return nil
}

// NoteLsCmd lists notes.
type NoteLsCmd struct {
	Tag string `help:"Only notes with this tag."`
}

// Run prints the notes.
func (c *NoteLsCmd) Run(ctx *Context) error {
	state, err := ctx.State()
	if err != nil {
		return err
	}
	if err := state.Load(context.Background()); err != nil {
		return err
	}
	shown := 0
	for _, n := range state.Notes() {
		if c.Tag != "" && !slices.Contains(n.Tags, c.Tag) {
			continue
		}
		shown++
		ctx.printf("%s  %s", n.Date.Local().Format("2006-01-02 15:04"), n.Content)
		if len(n.Tags) > 0 {
			ctx.printf("  #%s", strings.Join(n.Tags, " #"))
		}
		ctx.printf("  (%s)\n", n.ID)
	}
	if shown == 0 {
		ctx.printf("No notes.\n")
	}
	return nil
}

// WeightCmd groups the weight subcommands.
type WeightCmd struct {
	Add WeightAddCmd `cmd:"" help:"Record a weighing."`
	Rm  WeightRmCmd  `cmd:"" help:"Delete a weighing."`
	Ls  WeightLsCmd  `cmd:"" help:"List the weight history." default:"1"`
}

// WeightAddCmd records a weighing.
type WeightAddCmd struct {
	Grams int    `arg:"" help:"Weight in grams."`
	Date  string `help:"Day of the weighing (default: today)."`
}

// Run stores the record.
func (c *WeightAddCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		date = time.Now().Format(domain.DayLayout)
	}
	state, err := ctx.State()
	if err != nil {
		return err
	}
	w, err := state.AddWeight(context.Background(), domain.WeightRecord{Date: date, Weight: c.Grams})
	if err != nil {
		return err
	}
	ctx.printf("Recorded %d g on %s (%s)\n", w.Weight, w.Date, w.ID)
	return nil
}

// WeightRmCmd deletes a weighing.
type WeightRmCmd struct {
	ID string `arg:"" help:"Record id."`
}

// Run deletes the record.
func (c *WeightRmCmd) Run(ctx *Context) error {
	state, err := ctx.State()
	if err != nil {
		return err
	}
	if err := state.RemoveWeight(context.Background(), c.ID); err != nil {
		return err
	}
	ctx.printf("Deleted weight %s\n", c.ID)
	return nil
}

// WeightLsCmd lists the weight history.
type WeightLsCmd struct {
	Unit string `short:"u" default:"g" enum:"g,kg,lb" help:"Display unit."`
}

// Run prints the history and the total gain.
func (c *WeightLsCmd) Run(ctx *Context) error {
	state, err := ctx.State()
	if err != nil {
		return err
	}
	if err := state.Load(context.Background()); err != nil {
		return err
	}
	ws := state.Weights()
	if len(ws) == 0 {
		ctx.printf("No weight records.\n")
		return nil
	}
	for _, w := range ws {
		ctx.printf("%s  %8.2f %-2s  (%s)\n", w.Date, domain.ConvertGrams(w.Weight, c.Unit), c.Unit, w.ID)
	}
	ctx.printf("Gain since %s: %+d g\n", ws[0].Date, domain.WeightGain(ws))
	return nil
}
