package users

import (
	"context"
	"errors"
	"time"

	"github.com/adcraft-app/adcraft-backend/internal/apperr"
)

// Lookup finds an internal user by external identity.
type Lookup interface {
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error)
}

// Resolver maps a verified external identity to the internal user.
// A missing user is UserNotProvisioned ("setup incomplete"), which callers
// must keep distinct from Unauthorized.
type Resolver struct {
	lookup  Lookup
	timeout time.Duration
}

func NewResolver(lookup Lookup, timeout time.Duration) *Resolver {
	return &Resolver{lookup: lookup, timeout: timeout}
}

func (r *Resolver) Resolve(ctx context.Context, firebaseUID string) (*User, error) {
	const op = "users.Resolve"
	if firebaseUID == "" {
		return nil, apperr.New(apperr.Unauthorized, op, "claim has no uid")
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	u, err := r.lookup.GetByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.New(apperr.UserNotProvisioned, op, "user setup incomplete")
		}
		return nil, apperr.FromStore(op, err)
	}
	return u, nil
}
