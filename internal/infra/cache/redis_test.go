package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewFromClient(client), mr
}

func TestNilCacheReportsDisabled(t *testing.T) {
	var c *RedisCache
	ctx := context.Background()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.ErrorIs(t, c.Set(ctx, "k", "v", time.Minute), ErrDisabled)
	assert.ErrorIs(t, c.Del(ctx, "k"), ErrDisabled)

	allowed, err := c.AllowRequest(ctx, "k", 1, time.Minute)
	assert.True(t, allowed)
	assert.ErrorIs(t, err, ErrDisabled)
	assert.NoError(t, c.Close())
}

func TestSetWithRandomTTLStaysWithinJitter(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetWithRandomTTL(ctx, "posts:all", "[]", 10*time.Minute))

	ttl := mr.TTL("posts:all")
	assert.GreaterOrEqual(t, ttl, 9*time.Minute)
	assert.LessOrEqual(t, ttl, 11*time.Minute)

	val, err := c.Get(ctx, "posts:all")
	require.NoError(t, err)
	assert.Equal(t, "[]", val)
}

func TestAllowRequestEnforcesLimit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := c.AllowRequest(ctx, "rate:limit:1:post", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i+1)
	}
	allowed, err := c.AllowRequest(ctx, "rate:limit:1:post", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestZIncrByOrdersByScore(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.ZIncrBy(ctx, "trending", 1, "go")
	require.NoError(t, err)
	_, err = c.ZIncrBy(ctx, "trending", 2, "react")
	require.NoError(t, err)

	top, err := c.ZRevRangeWithScores(ctx, "trending", 0, -1)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "react", top[0].Member)
	assert.Equal(t, float64(2), top[0].Score)
}

func TestIncrWithTTLAndSetNX(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	n, err := c.IncrWithTTL(ctx, "views", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = c.IncrWithTTL(ctx, "views", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, time.Hour, mr.TTL("views"))

	n, err = c.Incr(ctx, "generation")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Zero(t, mr.TTL("generation"))

	ok, err := c.SetNX(ctx, "once", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.SetNX(ctx, "once", "1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}
