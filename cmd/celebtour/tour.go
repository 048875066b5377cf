package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mark3labs/celebtour/internal/catalog"
	"github.com/mark3labs/celebtour/internal/config"
	"github.com/mark3labs/celebtour/internal/logger"
	"github.com/mark3labs/celebtour/internal/nats"
	"github.com/mark3labs/celebtour/internal/route"
	"github.com/mark3labs/celebtour/internal/session"
	"github.com/mark3labs/celebtour/internal/state"
	"github.com/mark3labs/celebtour/internal/tui/wizard"
)

var tourFlags struct {
	start string
}

// loadConfig reads configuration and points the logger at it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return cfg, nil
}

// openStore starts the embedded event store under the data directory.
// A store that fails to start is logged and the caller runs without one.
func openStore(ctx context.Context, cfg *config.Config) (*nats.Embedded, *session.Store) {
	if !cfg.Persist {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	emb, err := nats.Start(ctx, filepath.Join(cfg.DataDir, "data"))
	if err != nil {
		logger.Warn("Event store unavailable, tours will not be saved: %v", err)
		return nil, nil
	}
	return emb, session.NewStore(emb.JS, emb.Stream)
}

func runTour(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if !route.Known(tourFlags.start) {
		logger.Warn("Unknown start route %q, opening home", tourFlags.start)
	}

	emb, store := openStore(cmd.Context(), cfg)
	defer func() {
		if err := emb.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			_ = emb.Close()
			os.Exit(0)
		}
	}()

	opts := wizard.Options{
		Config:  cfg,
		Catalog: cat,
		UIState: state.Load(cfg.DataDir),
		Start:   tourFlags.start,
	}
	// Typed nil interfaces would look like a working store
	if store != nil {
		opts.Recorder = store
		opts.Gallery = store
	}
	return wizard.Run(opts)
}
