package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/adcraft-app/adcraft-backend/internal/apperr"
	"github.com/adcraft-app/adcraft-backend/internal/projects/domain"
	"github.com/adcraft-app/adcraft-backend/internal/telemetry"
)

type BriefStore interface {
	UpsertOwned(ctx context.Context, ownerID, projectID string, in domain.BriefInput) (*domain.Brief, error)
	GetByProjectID(ctx context.Context, projectID string) (*domain.Brief, error)
}

type OwnedProjects interface {
	GetOwned(ctx context.Context, ownerID, projectID string) (*domain.Project, error)
}

type BriefService struct {
	briefs   BriefStore
	projects OwnedProjects
	timeout  time.Duration
}

func NewBriefService(briefs BriefStore, projects OwnedProjects, timeout time.Duration) *BriefService {
	return &BriefService{briefs: briefs, projects: projects, timeout: timeout}
}

// Save validates in and replaces the project's brief with it. Invalid input
// never reaches the store. The write is attempted once; a timeout is
// reported as retryable and left to the client.
func (s *BriefService) Save(ctx context.Context, ownerID, projectID string, in domain.BriefInput) (*domain.Brief, error) {
	const op = "briefs.Save"

	in, err := in.Normalize()
	if err != nil {
		telemetry.BriefUpsertsTotal.WithLabelValues(apperr.BadRequest.Code()).Inc()
		return nil, apperr.New(apperr.BadRequest, op, err.Error())
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	b, err := s.briefs.UpsertOwned(ctx, ownerID, projectID, in)
	if err != nil {
		err = storeErr(op, err)
		telemetry.BriefUpsertsTotal.WithLabelValues(apperr.KindOf(err).Code()).Inc()
		return nil, err
	}

	telemetry.BriefUpsertsTotal.WithLabelValues("ok").Inc()
	slog.Info("brief saved", "project_id", projectID, "brief_id", b.ID)
	return b, nil
}

// Get returns the current brief, or nil when none has been saved.
func (s *BriefService) Get(ctx context.Context, ownerID, projectID string) (*domain.Brief, error) {
	const op = "briefs.Get"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.projects.GetOwned(ctx, ownerID, projectID); err != nil {
		return nil, storeErr(op, err)
	}
	b, err := s.briefs.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, apperr.FromStore(op, err)
	}
	return b, nil
}
