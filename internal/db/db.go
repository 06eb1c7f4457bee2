// Package db opens the relational store and applies its schema.
//
// Postgres is the production backend, reached through pgx's database/sql
// adapter; its schema is versioned with golang-migrate from the embedded
// migrations directory. SQLite (pure Go,
// modernc.org/sqlite) backs local development and tests; its schema is the
// embedded sqlite_schema.sql applied on open.
//
// Repositories write queries with '?' placeholders and call Rebind, so the
// returned *sqlx.DB carries the right bind style for either driver.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed sqlite_schema.sql
var sqliteSchema string

type Options struct {
	Driver   string
	DSN      string
	MaxConns int
	MinConns int
	PingTO   time.Duration
}

func Open(ctx context.Context, opt Options) (*sqlx.DB, error) {
	if opt.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}
	if opt.PingTO == 0 {
		opt.PingTO = 3 * time.Second
	}

	switch opt.Driver {
	case DriverPostgres, "":
		return openPostgres(ctx, opt)
	case DriverSQLite:
		return openSQLite(ctx, opt)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", opt.Driver)
	}
}

func openPostgres(ctx context.Context, opt Options) (*sqlx.DB, error) {
	cfg, err := pgx.ParseConfig(opt.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	conn := stdlib.OpenDB(*cfg)

	if opt.MaxConns > 0 {
		conn.SetMaxOpenConns(opt.MaxConns)
	}
	if opt.MinConns > 0 {
		conn.SetMaxIdleConns(opt.MinConns)
	}
	conn.SetConnMaxIdleTime(5 * time.Minute)

	// Fail fast
	if err := ping(ctx, conn, opt.PingTO); err != nil {
		conn.Close()
		return nil, err
	}

	return sqlx.NewDb(conn, "pgx"), nil
}

// openSQLite opens a single-connection pool: ":memory:" databases live and
// die with their connection, and SQLite serialises writers anyway.
func openSQLite(ctx context.Context, opt Options) (*sqlx.DB, error) {
	conn, err := sql.Open("sqlite", opt.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := ping(ctx, conn, opt.PingTO); err != nil {
		conn.Close()
		return nil, err
	}

	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	// sqlx picks '?' bind vars from the "sqlite3" name; the driver itself is modernc's "sqlite".
	return sqlx.NewDb(conn, "sqlite3"), nil
}

func ping(ctx context.Context, conn *sql.DB, timeout time.Duration) error {
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := conn.PingContext(pctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	return nil
}
