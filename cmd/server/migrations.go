package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pmsdemo/pms-api/internal/config"
	"github.com/pmsdemo/pms-api/internal/platform/postgres"
)

// ErrMigrationsUnsupported is returned when -migrate is used with a storage
// driver that has no schema.
var ErrMigrationsUnsupported = errors.New("migrations require the postgres storage driver")

// handleMigrations runs one goose command against the configured database.
// Each run is tagged with a correlation id so its goose output can be grouped.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if cfg.Storage.Driver != config.DriverPostgres {
		return fmt.Errorf("%w (driver %q)", ErrMigrationsUnsupported, cfg.Storage.Driver)
	}

	log := logger.With(slog.String("migration_id", uuid.NewString()))
	log.Info("Executing migrations", "command", command)

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("Error closing database connection", "error", cerr)
		}
	}()

	return postgres.Migrate(ctx, db, command, log)
}
