package main

import (
	"context"

	"carousel-builder/internal/config"
	"carousel-builder/internal/database"
	"carousel-builder/internal/library"
	"carousel-builder/internal/logging"
)

// Re-collects every saved snapshot so stored variable lists, trimmed fields
// and action caps match what the collector produces today. Runs in a single
// transaction.
func main() {
	cfg := config.LoadConfig()
	logging.Init(cfg.LogLevel, cfg.LogPretty)
	log := logging.Component("rebuild")

	database.InitGorm(cfg)
	repo := library.NewGormRepository(database.GormDB)
	ctx := context.Background()

	log.Info().Msg("rebuilding saved templates")

	blob, err := repo.Export(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("error reading saved templates")
	}

	count, err := repo.Import(ctx, blob)
	if err != nil {
		log.Fatal().Err(err).Msg("error writing rebuilt templates")
	}

	log.Info().Int("count", count).Msg("done")
}
