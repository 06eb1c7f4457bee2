package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/adcraft-app/adcraft-backend/internal/projects/domain"
)

type BriefRepository struct {
	db *sqlx.DB
}

func NewBriefRepository(db *sqlx.DB) *BriefRepository {
	return &BriefRepository{db: db}
}

const briefColumns = `id, project_id, business_type, niche, buyer_type, angle, created_at, updated_at`

// UpsertOwned stores in as the project's brief, replacing every field of an
// existing one. The ownership check and the write share one transaction;
// a project the owner does not own yields domain.ErrNotFound and no write.
func (r *BriefRepository) UpsertOwned(ctx context.Context, ownerID, projectID string, in domain.BriefInput) (*domain.Brief, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var owned string
	err = tx.GetContext(ctx, &owned,
		tx.Rebind(`SELECT id FROM projects WHERE id = ? AND owner_id = ?`),
		projectID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO project_briefs (`+briefColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (project_id) DO UPDATE
SET
  business_type = excluded.business_type,
  niche = excluded.niche,
  buyer_type = excluded.buyer_type,
  angle = excluded.angle,
  updated_at = excluded.updated_at`),
		uuid.NewString(), projectID,
		string(in.BusinessType), in.Niche, string(in.BuyerType), string(in.Angle),
		now, now,
	)
	if err != nil {
		return nil, err
	}

	var b domain.Brief
	if err := tx.GetContext(ctx, &b,
		tx.Rebind(`SELECT `+briefColumns+` FROM project_briefs WHERE project_id = ?`),
		projectID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByProjectID returns nil, nil when no brief has been saved yet.
func (r *BriefRepository) GetByProjectID(ctx context.Context, projectID string) (*domain.Brief, error) {
	var b domain.Brief
	err := r.db.GetContext(ctx, &b,
		r.db.Rebind(`SELECT `+briefColumns+` FROM project_briefs WHERE project_id = ?`),
		projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
