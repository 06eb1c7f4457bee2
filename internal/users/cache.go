package users

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adcraft-app/adcraft-backend/internal/telemetry"
)

const identityKeyPrefix = "identity:uid:" // identity:uid:{firebase_uid} -> JSON user

// CachedLookup is a Redis read-through cache in front of a Lookup.
// Only found users are cached, so a freshly provisioned user is visible on
// the next request. Redis failures fall back to the wrapped Lookup.
type CachedLookup struct {
	next   Lookup
	client *redis.Client
	ttl    time.Duration
}

func NewCachedLookup(next Lookup, client *redis.Client, ttl time.Duration) *CachedLookup {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedLookup{next: next, client: client, ttl: ttl}
}

func (c *CachedLookup) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error) {
	key := identityKey(firebaseUID)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var u User
		if jerr := json.Unmarshal(data, &u); jerr == nil {
			telemetry.IdentityCacheLookupsTotal.WithLabelValues("hit").Inc()
			return &u, nil
		}
		slog.Warn("identity cache: dropping undecodable entry", "key", key)
		_ = c.client.Del(ctx, key).Err()
		telemetry.IdentityCacheLookupsTotal.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		telemetry.IdentityCacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		slog.Warn("identity cache: get failed, reading through", "error", err)
		telemetry.IdentityCacheLookupsTotal.WithLabelValues("error").Inc()
	}

	u, err := c.next.GetByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(u); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Warn("identity cache: set failed", "error", err)
		}
	}
	return u, nil
}

// Invalidate drops the cached entry after the user row changes.
func (c *CachedLookup) Invalidate(ctx context.Context, firebaseUID string) error {
	return c.client.Del(ctx, identityKey(firebaseUID)).Err()
}

func identityKey(firebaseUID string) string {
	return identityKeyPrefix + firebaseUID
}
