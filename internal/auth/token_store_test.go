package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/cache"
)

func TestTokenStore_RevokeSession(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store := NewTokenStore(cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})))
	ctx := context.Background()

	revoked, err := store.IsSessionRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.RevokeSession(ctx, "jti-1", 30*time.Minute))
	revoked, err = store.IsSessionRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 30*time.Minute, mr.TTL("revoked:session:jti-1"))

	mr.FastForward(31 * time.Minute)
	revoked, err = store.IsSessionRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenStore_IgnoresExpiredTTL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store := NewTokenStore(cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})))
	require.NoError(t, store.RevokeSession(context.Background(), "jti-2", 0))
	assert.False(t, mr.Exists("revoked:session:jti-2"))
}
