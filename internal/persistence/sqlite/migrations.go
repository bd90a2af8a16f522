package sqlite

import (
	"embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-migrate/migrate/v4"
	sqlite_migrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
)

// migrationFiles is the embedded schema migration set, applied at startup so
// the binary carries its own schema with no external migration step.
//
//go:embed migrations/*.sql
var migrationFiles embed.FS

func runMigrations(store *Store) error {
	driver, err := sqlite_migrate.WithInstance(store.db, &sqlite_migrate.Config{})
	if err != nil {
		return fmt.Errorf("creating sqlite migration driver: %w", err)
	}

	source, err := httpfs.New(http.FS(migrationFiles), "migrations")
	if err != nil {
		return fmt.Errorf("opening embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("httpfs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("constructing migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}

	return nil
}
