package database

import (
	"embed"
	"errors"
	"fmt"

	"travel-ticket-api/core/config"
	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/mysql/*.sql
var migrationsFS embed.FS

func newMigrator(cfg config.DatabaseConfig) (*migrate.Migrate, error) {
	dir := "migrations/postgres"
	if cfg.Driver == constants.DriverMySQL {
		dir = "migrations/mysql"
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.MigrateURL())
	if err != nil {
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	return m, nil
}

// MigrateUp applies every pending migration. Already up to date is not an error.
func MigrateUp(cfg config.DatabaseConfig) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Database:MigrateUp:Error", "error", err)
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("Database:MigrateUp:Done", "version", version, "dirty", dirty)
	return nil
}

// MigrateDown rolls back the given number of steps.
func MigrateDown(cfg config.DatabaseConfig, steps int) error {
	if steps <= 0 {
		steps = 1
	}

	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Database:MigrateDown:Error", "error", err)
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	logger.Info("Database:MigrateDown:Done", "steps", steps)
	return nil
}
