package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/adcraft-app/adcraft-backend/internal/apperr"
	"github.com/adcraft-app/adcraft-backend/internal/users"
)

type UserStore interface {
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*users.User, error)
	EnsureUser(ctx context.Context, u users.UpsertUser) (*users.User, error)
}

// CacheInvalidator drops a cached identity after the user row changes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, firebaseUID string) error
}

type AccountService struct {
	store   UserStore
	cache   CacheInvalidator
	timeout time.Duration
}

// NewAccountService wires provisioning. cache may be nil when the identity
// cache is disabled.
func NewAccountService(store UserStore, cache CacheInvalidator, timeout time.Duration) *AccountService {
	return &AccountService{store: store, cache: cache, timeout: timeout}
}

// SyncUser provisions or refreshes the internal user for a verified identity.
func (s *AccountService) SyncUser(ctx context.Context, in users.UpsertUser) (*users.User, error) {
	const op = "auth.SyncUser"
	if strings.TrimSpace(in.FirebaseUID) == "" {
		return nil, apperr.New(apperr.Unauthorized, op, "claim has no uid")
	}
	if len(in.DisplayName) > 120 {
		return nil, apperr.New(apperr.BadRequest, op, "displayName: must be at most 120 characters")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.store.EnsureUser(ctx, in)
	if err != nil {
		return nil, apperr.FromStore(op, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, u.FirebaseUID); err != nil {
			slog.Warn("identity cache invalidate failed", "firebase_uid", u.FirebaseUID, "error", err)
		}
	}
	return u, nil
}

func (s *AccountService) Profile(ctx context.Context, firebaseUID string) (*users.User, error) {
	const op = "auth.Profile"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.store.GetByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, apperr.New(apperr.UserNotProvisioned, op, "user setup incomplete")
		}
		return nil, apperr.FromStore(op, err)
	}
	return u, nil
}

func (s *AccountService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
