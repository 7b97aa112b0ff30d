package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kpi_tracker/backend/internal/config"
	"github.com/kpi_tracker/backend/internal/db"
)

// OpenRepository connects to PostgreSQL when DatabaseURL is set and applies
// the schema. Otherwise it returns an in-memory store, optionally loaded from
// SeedFile. The returned func releases the repository.
func OpenRepository(ctx context.Context, cfg config.Config, logger zerolog.Logger) (Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		mem := db.NewMemStore()
		if cfg.SeedFile != "" {
			seed, err := db.LoadSeedFile(cfg.SeedFile)
			if err != nil {
				return nil, nil, err
			}
			mem.Load(seed)
			logger.Info().
				Str("seed_file", cfg.SeedFile).
				Int("developers", len(seed.Developers)).
				Int("tickets", len(seed.Tickets)).
				Int("bugs", len(seed.Bugs)).
				Msg("seed loaded")
		}
		logger.Info().Msg("DATABASE_URL not set, using in-memory store")
		return mem, func() {}, nil
	}

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, store.Close, nil
}
