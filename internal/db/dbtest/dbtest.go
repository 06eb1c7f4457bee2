// Package dbtest provides an in-memory SQLite store with the full schema
// applied, plus seed helpers for repository and handler tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/adcraft-app/adcraft-backend/internal/db"
)

func NewSQLite(t testing.TB) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, db.Options{Driver: db.DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.RunMigrations(ctx, conn, db.DriverSQLite, "up"); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}

// SeedUser inserts a user and returns its internal id.
func SeedUser(t testing.TB, conn *sqlx.DB, firebaseUID string) string {
	t.Helper()
	id := uuid.NewString()
	now := time.Now().UTC()
	mustExec(t, conn, `INSERT INTO users (id, firebase_uid, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, firebaseUID, now, now)
	return id
}

func SeedProject(t testing.TB, conn *sqlx.DB, ownerID, name string) string {
	t.Helper()
	id := uuid.NewString()
	now := time.Now().UTC()
	mustExec(t, conn, `INSERT INTO projects (id, owner_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, ownerID, name, now, now)
	return id
}

func SeedBrandKit(t testing.TB, conn *sqlx.DB, projectID, websiteURL, brandName, colorsJSON string) {
	t.Helper()
	now := time.Now().UTC()
	mustExec(t, conn, `
INSERT INTO brand_kits (project_id, website_url, brand_name, tone, colors, created_at, updated_at)
VALUES (?, ?, ?, NULL, ?, ?, ?)`,
		projectID, websiteURL, brandName, colorsJSON, now, now)
}

// SeedCreative inserts a creative with an explicit created_at so ordering can
// be asserted. An empty imagePath stores NULL.
func SeedCreative(t testing.TB, conn *sqlx.DB, projectID, name, placement, imagePath string, createdAt time.Time) string {
	t.Helper()
	id := uuid.NewString()
	var path any
	if imagePath != "" {
		path = imagePath
	}
	mustExec(t, conn, `
INSERT INTO creatives (id, project_id, name, placement_size, selected_image_object_path, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		id, projectID, name, placement, path, createdAt.UTC())
	return id
}

// CountRows returns the number of rows in table matching the optional where clause.
func CountRows(t testing.TB, conn *sqlx.DB, table, where string, args ...any) int {
	t.Helper()
	q := `SELECT COUNT(*) FROM ` + table
	if where != "" {
		q += ` WHERE ` + where
	}
	var n int
	if err := conn.Get(&n, conn.Rebind(q), args...); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func mustExec(t testing.TB, conn *sqlx.DB, q string, args ...any) {
	t.Helper()
	if _, err := conn.Exec(conn.Rebind(q), args...); err != nil {
		t.Fatalf("seed: %v", err)
	}
}
