package libs

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, max int) (*RedisLoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLoginLimiter(client, max, 15*time.Minute), mr
}

func TestRedisLoginLimiterLocksAfterMax(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		locked, err := limiter.Locked(ctx, "ana@example.com")
		require.NoError(t, err)
		assert.False(t, locked, "attempt %d", i)
		require.NoError(t, limiter.RecordFailure(ctx, "ana@example.com"))
	}

	locked, err := limiter.Locked(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, locked)

	locked, err = limiter.Locked(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestRedisLoginLimiterWindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)
	ctx := context.Background()

	require.NoError(t, limiter.RecordFailure(ctx, "ana@example.com"))
	assert.Equal(t, 15*time.Minute, mr.TTL("login_failures:ana@example.com"))

	require.NoError(t, limiter.RecordFailure(ctx, "ana@example.com"))
	assert.Equal(t, 15*time.Minute, mr.TTL("login_failures:ana@example.com"), "later failures do not extend the window")

	mr.FastForward(16 * time.Minute)
	locked, err := limiter.Locked(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestRedisLoginLimiterReset(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	require.NoError(t, limiter.RecordFailure(ctx, "ana@example.com"))
	require.NoError(t, limiter.Reset(ctx, "ana@example.com"))

	locked, err := limiter.Locked(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestRedisLoginLimiterSurfacesOutage(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)
	mr.Close()

	_, err := limiter.Locked(context.Background(), "ana@example.com")
	assert.Error(t, err)
}
