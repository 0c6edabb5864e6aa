package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"petdiary/internal/adapter/advisor"
	adapthttp "petdiary/internal/adapter/http"
	"petdiary/internal/app"
	"petdiary/internal/seed"
)

// ServeCmd runs the HTTP server.
type ServeCmd struct {
	Addr   string `help:"Listen address (overrides server.addr)."`
	WebDir string `help:"Directory with the web UI (overrides server.web_dir)." type:"path"`
}

// Run starts the server and blocks until SIGINT or SIGTERM.
func (c *ServeCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	addr := cfg.Server.Addr
	if c.Addr != "" {
		addr = c.Addr
	}
	webDir := cfg.Server.WebDir
	if c.WebDir != "" {
		webDir = c.WebDir
	}

	store, closeStore, err := OpenStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore() //nolint:errcheck

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gate := app.NewAccessGate(cfg.Access.Key, cfg.Access.KeyBcrypt)
	if !gate.Configured() {
		ctx.Logger.Warn("no access key configured; every API call will fail until ACCESS_KEY is set")
	}

	handler, err := buildServer(runCtx, ctx, store, gate, webDir)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		ctx.Logger.Info("listening", "addr", addr, "store", cfg.Store.Type)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-runCtx.Done():
	}

	ctx.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildServer wires services onto store and returns the root handler. The
// weight history is seeded first when store.seed_on_start is set.
func buildServer(runCtx context.Context, ctx *Context, store Store, gate *app.AccessGate, webDir string) (http.Handler, error) {
	cfg := ctx.Config
	weights := app.NewWeightService(store)

	if cfg.Store.SeedOnStart {
		n, err := seedWeights(runCtx, weights, cfg.Store.SeedFile)
		if err != nil {
			return nil, err
		}
		ctx.Logger.Info("seeded weight history", "records", n)
	}

	var gen app.TextGenerator
	if c := advisor.New(cfg.AdvisorClientConfig()); c != nil {
		gen = c
	} else {
		ctx.Logger.Warn("no API_KEY configured; /api/ai will report a server configuration error")
	}

	svc := adapthttp.Services{
		Events:  app.NewEventService(store),
		Notes:   app.NewNoteService(store),
		Weights: weights,
		Charts:  app.NewChartsService(store, store, cfg.Profile()),
		Advice:  app.NewAdviceService(gen),
	}
	return adapthttp.New(svc, gate, ctx.Logger, webDir).Handler(), nil
}

func seedWeights(ctx context.Context, weights *app.WeightService, file string) (int, error) {
	history, err := seed.Load(file)
	if err != nil {
		return 0, err
	}
	n, err := weights.Seed(ctx, history)
	if err != nil {
		return n, fmt.Errorf("seed weights: %w", err)
	}
	return n, nil
}

// SeedCmd stores the default weight history into an empty store.
type SeedCmd struct {
	File string `help:"YAML file with the weight history (overrides store.seed_file)." type:"path"`
}

// Run seeds the configured store.
func (c *SeedCmd) Run(ctx *Context) error {
	store, closeStore, err := OpenStore(ctx.Config.Store)
	if err != nil {
		return err
	}
	defer closeStore() //nolint:errcheck

	file := ctx.Config.Store.SeedFile
	if c.File != "" {
		file = c.File
	}
	n, err := seedWeights(context.Background(), app.NewWeightService(store), file)
	if err != nil {
		return err
	}
	if n == 0 {
		ctx.printf("Weight history already present, nothing seeded.\n")
		return nil
	}
	ctx.printf("Seeded %d weight records.\n", n)
	return nil
}

// HashKeyCmd prints a bcrypt hash to use as access.key_bcrypt.
type HashKeyCmd struct{}

// Run prompts for the key and prints its hash.
func (c *HashKeyCmd) Run(ctx *Context) error {
	key, err := promptSecret("Access key: ")
	if err != nil {
		return err
	}
	hash, err := app.HashAccessKey(key)
	if err != nil {
		return err
	}
	ctx.printf("%s\n", hash)
	return nil
}
