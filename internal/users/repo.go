package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repo struct {
	db *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo {
	return &Repo{db: db}
}

const userColumns = `id, firebase_uid, email, display_name, created_at, updated_at`

func (r *Repo) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error) {
	q := r.db.Rebind(`
SELECT ` + userColumns + `
FROM users
WHERE firebase_uid = ?`)

	var u User
	if err := r.db.GetContext(ctx, &u, q, firebaseUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*User, error) {
	q := r.db.Rebind(`
SELECT ` + userColumns + `
FROM users
WHERE id = ?`)

	var u User
	if err := r.db.GetContext(ctx, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// EnsureUser provisions the internal user for a verified Firebase identity.
// Existing rows keep their id and firebase_uid; email and display name are
// refreshed only when new values are supplied.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (*User, error) {
	fuid := strings.TrimSpace(u.FirebaseUID)
	if fuid == "" {
		return nil, fmt.Errorf("firebase_uid required")
	}

	now := time.Now().UTC()
	q := r.db.Rebind(`
INSERT INTO users (id, firebase_uid, email, display_name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (firebase_uid) DO UPDATE
SET
  email = COALESCE(excluded.email, users.email),
  display_name = COALESCE(excluded.display_name, users.display_name),
  updated_at = excluded.updated_at`)

	if _, err := r.db.ExecContext(ctx, q,
		uuid.NewString(), fuid, nullIfEmpty(u.Email), nullIfEmpty(u.DisplayName), now, now,
	); err != nil {
		return nil, err
	}

	return r.GetByFirebaseUID(ctx, fuid)
}

func nullIfEmpty(s string) any {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return s
}
