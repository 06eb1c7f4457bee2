package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/adcraft-app/adcraft-backend/config"
	"github.com/adcraft-app/adcraft-backend/internal/db"
)

// OpenDB connects to the configured store and, when DB_MIGRATE is set,
// brings the schema up to date before anything serves traffic.
func OpenDB(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	conn, err := db.Open(ctx, db.Options{
		Driver:   cfg.Driver,
		DSN:      cfg.DSN,
		MaxConns: cfg.MaxConns,
		MinConns: cfg.MinConns,
		PingTO:   cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	if !cfg.Migrate {
		return conn, nil
	}

	if err := db.RunMigrations(ctx, conn, cfg.Driver, "up"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if cfg.Driver == db.DriverPostgres {
		version, dirty, err := db.MigrationVersion(conn)
		if err != nil {
			slog.Warn("failed to read migration version", "error", err)
		} else {
			slog.Info("database schema ready", "version", version, "dirty", dirty)
		}
	}
	return conn, nil
}
