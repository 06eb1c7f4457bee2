package users

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T, next Lookup) (*CachedLookup, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCachedLookup(next, client, time.Minute), mr
}

func TestCachedLookup_HitAvoidsRepository(t *testing.T) {
	ctx := context.Background()
	next := &fakeLookup{users: map[string]*User{"fb-1": {ID: "u-1", FirebaseUID: "fb-1"}}}
	cache, mr := setupCache(t, next)

	u, err := cache.GetByFirebaseUID(ctx, "fb-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, 1, next.calls)
	assert.True(t, mr.Exists("identity:uid:fb-1"))
	assert.Equal(t, time.Minute, mr.TTL("identity:uid:fb-1"))

	u, err = cache.GetByFirebaseUID(ctx, "fb-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, 1, next.calls, "second lookup must be served from redis")
}

func TestCachedLookup_MissesAreNotCached(t *testing.T) {
	ctx := context.Background()
	next := &fakeLookup{users: map[string]*User{}}
	cache, mr := setupCache(t, next)

	_, err := cache.GetByFirebaseUID(ctx, "fb-new")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.False(t, mr.Exists("identity:uid:fb-new"))

	next.users["fb-new"] = &User{ID: "u-new", FirebaseUID: "fb-new"}
	u, err := cache.GetByFirebaseUID(ctx, "fb-new")
	require.NoError(t, err)
	assert.Equal(t, "u-new", u.ID)
}

func TestCachedLookup_RedisDownFallsThrough(t *testing.T) {
	ctx := context.Background()
	next := &fakeLookup{users: map[string]*User{"fb-1": {ID: "u-1", FirebaseUID: "fb-1"}}}
	cache, mr := setupCache(t, next)
	mr.Close()

	u, err := cache.GetByFirebaseUID(ctx, "fb-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
}

func TestCachedLookup_CorruptEntryIsReplaced(t *testing.T) {
	ctx := context.Background()
	next := &fakeLookup{users: map[string]*User{"fb-1": {ID: "u-1", FirebaseUID: "fb-1"}}}
	cache, mr := setupCache(t, next)
	require.NoError(t, mr.Set("identity:uid:fb-1", "{not json"))

	u, err := cache.GetByFirebaseUID(ctx, "fb-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, 1, next.calls)
}

func TestCachedLookup_Invalidate(t *testing.T) {
	ctx := context.Background()
	next := &fakeLookup{users: map[string]*User{"fb-1": {ID: "u-1", FirebaseUID: "fb-1"}}}
	cache, mr := setupCache(t, next)

	_, err := cache.GetByFirebaseUID(ctx, "fb-1")
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, "fb-1"))
	assert.False(t, mr.Exists("identity:uid:fb-1"))
}
