package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adcraft-app/adcraft-backend/internal/apperr"
	"github.com/adcraft-app/adcraft-backend/internal/projects/domain"
)

const MaxProjectNameLength = 120

type ProjectStore interface {
	Create(ctx context.Context, ownerID, name string) (*domain.Project, error)
	GetOwned(ctx context.Context, ownerID, projectID string) (*domain.Project, error)
	List(ctx context.Context, ownerID string) ([]domain.Project, error)
	GetBrandKit(ctx context.Context, projectID string) (*domain.BrandKit, error)
	ListCreatives(ctx context.Context, projectID string) ([]domain.Creative, error)
}

type BriefReader interface {
	GetByProjectID(ctx context.Context, projectID string) (*domain.Brief, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	projects ProjectStore
	briefs   BriefReader
	timeout  time.Duration
}

// NewProjectService creates a new project service
func NewProjectService(projects ProjectStore, briefs BriefReader, timeout time.Duration) *ProjectService {
	return &ProjectService{projects: projects, briefs: briefs, timeout: timeout}
}

// Create creates a new project
func (s *ProjectService) Create(ctx context.Context, ownerID, name string) (*domain.Project, error) {
	const op = "projects.Create"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.BadRequest, op, "name: is required")
	}
	if utf8.RuneCountInString(name) > MaxProjectNameLength {
		return nil, apperr.New(apperr.BadRequest, op, "name: must be at most 120 characters")
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	p, err := s.projects.Create(ctx, ownerID, name)
	if err != nil {
		return nil, apperr.FromStore(op, err)
	}
	return p, nil
}

// List returns all projects for a user, newest first.
func (s *ProjectService) List(ctx context.Context, ownerID string) ([]domain.Project, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	items, err := s.projects.List(ctx, ownerID)
	if err != nil {
		return nil, apperr.FromStore("projects.List", err)
	}
	return items, nil
}

// View loads everything the project page shows. Ownership is checked first;
// nothing else is read for a project the caller does not own.
func (s *ProjectService) View(ctx context.Context, ownerID, projectID string) (*domain.ProjectView, error) {
	const op = "projects.View"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	p, err := s.projects.GetOwned(ctx, ownerID, projectID)
	if err != nil {
		return nil, storeErr(op, err)
	}

	kit, err := s.projects.GetBrandKit(ctx, p.ID)
	if err != nil {
		return nil, apperr.FromStore(op, err)
	}
	brief, err := s.briefs.GetByProjectID(ctx, p.ID)
	if err != nil {
		return nil, apperr.FromStore(op, err)
	}
	creatives, err := s.projects.ListCreatives(ctx, p.ID)
	if err != nil {
		return nil, apperr.FromStore(op, err)
	}

	return &domain.ProjectView{
		Project:   *p,
		BrandKit:  kit,
		Brief:     brief,
		Creatives: creatives,
	}, nil
}

func storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperr.New(apperr.NotFoundOrForbidden, op, "project not found or access denied")
	}
	return apperr.FromStore(op, err)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
