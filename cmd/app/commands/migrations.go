package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/recordseal/internal/database"
)

// migrationsPaths maps each supported driver to its migration source.
var migrationsPaths = map[string]string{
	database.DriverPostgres: "file://migrations/postgresql",
	database.DriverMySQL:    "file://migrations/mysql",
}

// RunMigrations applies all pending migrations for the configured driver. Returns nil if
// there is nothing to apply.
func RunMigrations(logger *slog.Logger, dbDriver, dbConnectionString string) error {
	migrationsPath, ok := migrationsPaths[dbDriver]
	if !ok {
		return fmt.Errorf("unsupported database driver: %s", dbDriver)
	}

	logger.Info("running database migrations", slog.String("driver", dbDriver))

	m, err := migrate.New(migrationsPath, dbConnectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
