package commands

import (
	"fmt"

	"github.com/roasbeef/nowhere/internal/persistence/sqlite"
)

// openStore opens the daemon's database without running migrations: the CLI
// only issues read queries (the connection itself is not opened in a
// read-only mode), and a migration race against a live daemon would corrupt
// the schema.
func openStore() (*sqlite.Store, error) {
	store, err := sqlite.Open(sqlite.Config{
		DatabaseFile:   dbPath,
		SkipMigrations: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}
	return store, nil
}
