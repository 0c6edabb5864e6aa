package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"petdiary/internal/cli"
	"petdiary/internal/config"
	"petdiary/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file (YAML, JSON or TOML). Defaults to petdiary.* in . or ~/.config/petdiary." type:"path"`
	Key     string `help:"Access key for client commands (default: client.key, then the OS keyring)."`
	Server  string `help:"Server base URL for client commands (overrides client.base_url)."`

	Serve     cli.ServeCmd     `cmd:"" help:"Run the HTTP server." default:"1"`
	Seed      cli.SeedCmd      `cmd:"" help:"Store the default weight history into an empty store."`
	HashKey   cli.HashKeyCmd   `cmd:"" help:"Print a bcrypt hash of an access key for access.key_bcrypt."`
	Login     cli.LoginCmd     `cmd:"" help:"Verify an access key and save it to the OS keyring."`
	Logout    cli.LogoutCmd    `cmd:"" help:"Remove the saved access key."`
	Dashboard cli.DashboardCmd `cmd:"" help:"Show age, weight and upcoming events."`
	Ask       cli.AskCmd       `cmd:"" help:"Ask the veterinary assistant."`
	Event     cli.EventCmd     `cmd:"" help:"Manage calendar events."`
	Note      cli.NoteCmd      `cmd:"" help:"Manage notes."`
	Weight    cli.WeightCmd    `cmd:"" help:"Manage the weight history."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("petdiary"),
		kong.Description("Growth diary for a pet: weights, vet calendar, notes and an AI assistant."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	l, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Config: cfg,
		Logger: l,
		Out:    os.Stdout,
		Key:    CLI.Key,
		Server: CLI.Server,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
