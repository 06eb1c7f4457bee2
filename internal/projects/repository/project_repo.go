package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/adcraft-app/adcraft-backend/internal/projects/domain"
)

// ProjectRepository provides owner-scoped persistence operations for
// projects and the read-only rows hanging off them.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project for the given owner.
func (r *ProjectRepository) Create(ctx context.Context, ownerID, name string) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}
	if ownerID == "" {
		return nil, fmt.Errorf("owner id required")
	}

	now := time.Now().UTC()
	p := domain.Project{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	q := r.db.Rebind(`
INSERT INTO projects (id, owner_id, name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, q, p.ID, p.OwnerID, p.Name, p.CreatedAt, p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetOwned returns the project only when ownerID owns it.
func (r *ProjectRepository) GetOwned(ctx context.Context, ownerID, projectID string) (*domain.Project, error) {
	q := r.db.Rebind(`
SELECT id, owner_id, name, created_at, updated_at
FROM projects
WHERE id = ? AND owner_id = ?`)

	var p domain.Project
	if err := r.db.GetContext(ctx, &p, q, projectID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns the owner's projects, newest first.
func (r *ProjectRepository) List(ctx context.Context, ownerID string) ([]domain.Project, error) {
	q := r.db.Rebind(`
SELECT id, owner_id, name, created_at, updated_at
FROM projects
WHERE owner_id = ?
ORDER BY created_at DESC`)

	out := make([]domain.Project, 0, 16)
	if err := r.db.SelectContext(ctx, &out, q, ownerID); err != nil {
		return nil, err
	}
	return out, nil
}

type brandKitRow struct {
	ProjectID  string         `db:"project_id"`
	WebsiteURL string         `db:"website_url"`
	BrandName  sql.NullString `db:"brand_name"`
	Tone       sql.NullString `db:"tone"`
	Colors     string         `db:"colors"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

// GetBrandKit returns nil, nil when the project has not been scanned yet.
func (r *ProjectRepository) GetBrandKit(ctx context.Context, projectID string) (*domain.BrandKit, error) {
	q := r.db.Rebind(`
SELECT project_id, website_url, brand_name, tone, colors, created_at, updated_at
FROM brand_kits
WHERE project_id = ?`)

	var row brandKitRow
	if err := r.db.GetContext(ctx, &row, q, projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	kit := &domain.BrandKit{
		ProjectID:  row.ProjectID,
		WebsiteURL: row.WebsiteURL,
		Colors:     []string{},
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.BrandName.Valid {
		kit.BrandName = &row.BrandName.String
	}
	if row.Tone.Valid {
		kit.Tone = &row.Tone.String
	}
	if row.Colors != "" {
		if err := json.Unmarshal([]byte(row.Colors), &kit.Colors); err != nil {
			return nil, fmt.Errorf("brand kit %s: decode colors: %w", projectID, err)
		}
	}
	return kit, nil
}

// ListCreatives returns the project's creatives, newest first.
func (r *ProjectRepository) ListCreatives(ctx context.Context, projectID string) ([]domain.Creative, error) {
	q := r.db.Rebind(`
SELECT id, project_id, name, placement_size, selected_image_object_path, created_at
FROM creatives
WHERE project_id = ?
ORDER BY created_at DESC`)

	out := make([]domain.Creative, 0, 8)
	if err := r.db.SelectContext(ctx, &out, q, projectID); err != nil {
		return nil, err
	}
	return out, nil
}
