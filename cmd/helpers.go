package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/orbit-research/exoplanet-cli/internal/archive"
	"github.com/orbit-research/exoplanet-cli/internal/config"
	"github.com/orbit-research/exoplanet-cli/internal/store"
)

func newArchiveClient(cfg *config.Config) *archive.Client {
	return archive.NewClient(archive.Options{
		BaseURL:    cfg.Archive.BaseURL,
		UserAgent:  cfg.Archive.UserAgent,
		Timeout:    time.Duration(cfg.Archive.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Archive.MaxRetries,
		RatePerSec: cfg.Archive.RatePerSec,
	})
}

func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.DSN)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DSN)
	default:
		return nil, eris.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
