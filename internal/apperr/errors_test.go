package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestKindMapping(t *testing.T) {
	tests := []struct {
		kind   Kind
		status int
		code   string
		retry  bool
	}{
		{Unauthorized, http.StatusUnauthorized, "unauthorized", false},
		{UserNotProvisioned, http.StatusForbidden, "user_not_provisioned", false},
		{NotFoundOrForbidden, http.StatusNotFound, "not_found", false},
		{BadRequest, http.StatusBadRequest, "bad_request", false},
		{Timeout, http.StatusServiceUnavailable, "timeout", true},
		{Configuration, http.StatusInternalServerError, "configuration_error", false},
		{Internal, http.StatusInternalServerError, "internal_error", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.kind.HTTPStatus())
			assert.Equal(t, tt.code, tt.kind.Code())
			assert.Equal(t, tt.retry, tt.kind.Retryable())
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Run("classified error survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(NotFoundOrForbidden, "projects.View", "project not found"))
		assert.Equal(t, NotFoundOrForbidden, KindOf(err))
		assert.True(t, Is(err, NotFoundOrForbidden))
	})

	t.Run("deadline is a timeout", func(t *testing.T) {
		err := fmt.Errorf("query: %w", context.DeadlineExceeded)
		assert.Equal(t, Timeout, KindOf(err))
	})

	t.Run("unknown errors are internal", func(t *testing.T) {
		assert.Equal(t, Internal, KindOf(errors.New("boom")))
	})

	t.Run("nil is never a kind", func(t *testing.T) {
		assert.False(t, Is(nil, Internal))
	})
}

func TestFromStore(t *testing.T) {
	assert.NoError(t, FromStore("op", nil))

	cause := errors.New("connection refused")
	err := FromStore("briefs.Upsert", cause)
	assert.Equal(t, Internal, KindOf(err))
	assert.ErrorIs(t, err, cause)

	err = FromStore("briefs.Upsert", context.DeadlineExceeded)
	assert.Equal(t, Timeout, KindOf(err))

	classified := New(NotFoundOrForbidden, "briefs.Upsert", "project not found")
	assert.Same(t, classified, FromStore("outer", classified))
}

func TestFromStore_PostgresCodes(t *testing.T) {
	tests := []struct {
		code string
		want Kind
	}{
		{"57014", Timeout},
		{"40001", Timeout},
		{"40P01", Timeout},
		{"08006", Timeout},
		{"23505", Internal},
		{"42P01", Internal},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			cause := fmt.Errorf("exec: %w", &pgconn.PgError{Code: tt.code})
			assert.Equal(t, tt.want, KindOf(FromStore("briefs.Upsert", cause)))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "niche is required", PublicMessage(New(BadRequest, "briefs.Save", "niche is required")))

	internal := Wrap(Internal, "briefs.Save", errors.New(`pq: relation "project_briefs" does not exist`))
	assert.Empty(t, PublicMessage(internal), "internal detail must never be public")
	assert.Contains(t, internal.Error(), "project_briefs", "detail stays available to logs")
}
