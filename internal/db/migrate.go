package db

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const sqliteDropAll = `
DROP TABLE IF EXISTS creatives;
DROP TABLE IF EXISTS project_briefs;
DROP TABLE IF EXISTS brand_kits;
DROP TABLE IF EXISTS projects;
DROP TABLE IF EXISTS users;
`

// RunMigrations applies ("up") or rolls back ("down") the schema for the
// driver the connection was opened with.
func RunMigrations(ctx context.Context, conn *sqlx.DB, driver, direction string) error {
	if direction != "up" && direction != "down" {
		return fmt.Errorf("invalid migration direction: %s (must be 'up' or 'down')", direction)
	}

	if driver == DriverSQLite {
		stmt := sqliteSchema
		if direction == "down" {
			stmt = sqliteDropAll
		}
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: applying schema: %w", err)
		}
		return nil
	}

	m, err := newMigrator(conn)
	if err != nil {
		return err
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations %s: %w", direction, err)
	}
	return nil
}

// MigrationVersion returns the applied Postgres schema version.
func MigrationVersion(conn *sqlx.DB) (uint, bool, error) {
	m, err := newMigrator(conn)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func newMigrator(conn *sqlx.DB) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(conn.DB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}
