package post

import (
	"context"
	"testing"

	"github.com/Nir-Bhay/LinkedIn-clone/config"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/svc"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedHandler(t *testing.T) *PostHandler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPostHandler(svc.New(&config.Config{}, nil, cache.NewFromClient(client)))
}

func TestFeedReadBeforeWriteIsNotServed(t *testing.T) {
	h := newCachedHandler(t)
	ctx := context.Background()

	// a reader misses and queries the database
	_, version, ok := h.cachedFeed(ctx)
	require.False(t, ok)
	require.Equal(t, "0", version)

	// a post is created before the reader stores what it read
	h.invalidateFeed(ctx)
	h.storeFeed(ctx, version, []models.PostView{{ID: 1, Content: "stale"}})

	_, next, ok := h.cachedFeed(ctx)
	assert.False(t, ok)
	assert.Equal(t, "1", next)

	fresh := []models.PostView{{ID: 2, Content: "fresh"}, {ID: 1, Content: "stale"}}
	h.storeFeed(ctx, next, fresh)
	got, _, ok := h.cachedFeed(ctx)
	require.True(t, ok)
	assert.Len(t, got, 2)
	assert.Equal(t, uint(2), got[0].ID)
}

func TestFeedCacheDisabledWithoutRedis(t *testing.T) {
	h := NewPostHandler(svc.New(&config.Config{}, nil, nil))
	ctx := context.Background()

	h.storeFeed(ctx, "", []models.PostView{{ID: 1}})
	h.invalidateFeed(ctx)
	_, version, ok := h.cachedFeed(ctx)
	assert.False(t, ok)
	assert.Empty(t, version)
}
