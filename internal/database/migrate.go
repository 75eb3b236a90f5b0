package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

// MigrationsDir is the migrate source URL for the sales_transactions schema,
// relative to the working directory.
var MigrationsDir = "file://migrations"

// RunMigrations brings the sales schema up to the latest version.
func RunMigrations(databaseURL string) error {
	return migrateSalesSchema(databaseURL, "up", (*migrate.Migrate).Up)
}

// RollbackMigrations drops every sales schema version, leaving an empty database.
func RollbackMigrations(databaseURL string) error {
	return migrateSalesSchema(databaseURL, "down", (*migrate.Migrate).Down)
}

func migrateSalesSchema(databaseURL, direction string, step func(*migrate.Migrate) error) error {
	m, err := migrate.New(MigrationsDir, databaseURL)
	if err != nil {
		return fmt.Errorf("open sales schema migrations %s: %w", MigrationsDir, err)
	}
	defer m.Close()

	changed := true
	if err := step(m); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate sales schema %s: %w", direction, err)
		}
		changed = false
	}

	event := log.Info().
		Str("direction", direction).
		Bool("changed", changed)
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		event = event.Str("version", "none")
	case err != nil:
		return fmt.Errorf("read sales schema version: %w", err)
	default:
		event = event.Uint("version", version).Bool("dirty", dirty)
	}
	event.Msg("sales schema migrated")

	return nil
}
