package cli

import (
	"context"
	"strings"

	"petdiary/internal/client"
)

// AskCmd asks the veterinary assistant a question.
type AskCmd struct {
	Question []string `arg:"" help:"Question to ask."`
}

// Run loads the diary as context and prints the answer.
func (c *AskCmd) Run(ctx *Context) error {
	api, err := ctx.API()
	if err != nil {
		return err
	}
	state := client.NewState(api, ctx.Logger)
	bg := context.Background()
	if err := state.Load(bg); err != nil {
		// The advisor still answers with whatever context is available.
		ctx.Logger.Warn("could not load diary", "err", err)
	}
	adv := client.NewAdvisor(api, state, ctx.Config.Profile(), ctx.Logger)
	ctx.printf("%s\n", adv.Ask(bg, strings.Join(c.Question, " ")))
	return nil
}
