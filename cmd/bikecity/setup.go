package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/bike-city/internal/backend"
	"github.com/vovakirdan/bike-city/internal/config"
	"github.com/vovakirdan/bike-city/internal/core"
	"github.com/vovakirdan/bike-city/internal/game"
	"github.com/vovakirdan/bike-city/internal/platform/tui"
	"github.com/vovakirdan/bike-city/internal/storage"
	"github.com/vovakirdan/bike-city/internal/world"
)

// source is what a command reads players and the catalog from: the local
// store, or the HTTP API when --api is set.
type source struct {
	backend backend.Backend
	store   *storage.Store // nil when remote
}

// openSource connects to apiURL when it is set and opens the local database
// otherwise.
func openSource(ctx context.Context, apiURL string) (*source, error) {
	if apiURL != "" {
		c := backend.NewClient(apiURL)
		if err := c.Health(ctx); err != nil {
			return nil, fmt.Errorf("API at %s is not reachable: %w", apiURL, err)
		}
		return &source{backend: c}, nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open player database: %w", err)
	}
	return &source{backend: store, store: store}, nil
}

func (s *source) Close() {
	if s.store != nil {
		s.store.Close()
	}
}

// rider loads the player to ride as. An ID wins over a name; a local name is
// reused when it exists, and a new player is created otherwise.
func (s *source) rider(ctx context.Context, id, name string) (backend.PlayerRecord, error) {
	if id != "" {
		return s.backend.GetPlayer(ctx, id)
	}

	if s.store != nil {
		rec, err := s.store.FindPlayerByName(ctx, name)
		if err == nil || !errors.Is(err, backend.ErrNotFound) {
			return rec, err
		}
	}

	newID, err := s.backend.CreatePlayer(ctx, name)
	if err != nil {
		return backend.PlayerRecord{}, err
	}
	return s.backend.GetPlayer(ctx, newID)
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// newLogger writes to path, or discards when path is empty. The terminal is
// owned by the game while it runs. The returned func closes the file.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "bikecity",
		Level:           log.DebugLevel,
	})
	//nolint:errcheck // Best-effort close on exit
	return logger, func() { f.Close() }, nil
}

// ride generates a city and runs a game for rec until the player quits.
func ride(ctx context.Context, src *source, rec backend.PlayerRecord, cfg config.GameConfig, rt core.RuntimeConfig, logger *log.Logger) error {
	catalog, err := game.LoadCatalog(ctx, src.backend)
	if err != nil {
		return err
	}

	w := world.Generate(cfg.WorldParams(), rt.Seed)
	session, err := game.NewSession(&rec, w, src.backend, cfg,
		game.WithLogger(logger),
		game.WithCatalog(catalog),
	)
	if err != nil {
		return err
	}
	logger.Info("ride started", "player", rec.ID, "name", rec.Name, "seed", rt.Seed)

	return tui.Run(session, src.backend, cfg, rt)
}
