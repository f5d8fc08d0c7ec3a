package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"

	"go.uber.org/zap"
)

// The anonymous feed is cached under a generation number. Mutations bump the
// generation, so a feed read before a write is stored under a key no reader
// will ask for again.
const (
	feedVersionKey = "posts:all:ver"
	feedCacheTTL   = 10 * time.Minute
)

func feedCacheKey(version string) string {
	return fmt.Sprintf("posts:all:%s", version)
}

// feedVersion returns the current generation, or false when Redis is unusable.
func (h *PostHandler) feedVersion(ctx context.Context) (string, bool) {
	v, err := h.svc.Cache.Get(ctx, feedVersionKey)
	if errors.Is(err, cache.Nil) {
		return "0", true
	}
	if err != nil {
		return "", false
	}
	return v, true
}

// cachedFeed also returns the generation it looked at, which the caller
// passes to storeFeed on a miss.
func (h *PostHandler) cachedFeed(ctx context.Context) ([]models.PostView, string, bool) {
	version, ok := h.feedVersion(ctx)
	if !ok {
		return nil, "", false
	}
	raw, err := h.svc.Cache.Get(ctx, feedCacheKey(version))
	if err != nil {
		return nil, version, false
	}
	var views []models.PostView
	if err := json.Unmarshal([]byte(raw), &views); err != nil {
		return nil, version, false
	}
	zap.L().Debug("feed retrieved from cache", zap.String("version", version))
	return views, version, true
}

func (h *PostHandler) storeFeed(ctx context.Context, version string, views []models.PostView) {
	if version == "" {
		return
	}
	body, err := json.Marshal(views)
	if err != nil {
		return
	}
	_ = h.svc.Cache.SetWithRandomTTL(ctx, feedCacheKey(version), string(body), feedCacheTTL)
}

// invalidateFeed runs after every post mutation.
func (h *PostHandler) invalidateFeed(ctx context.Context) {
	if _, err := h.svc.Cache.Incr(ctx, feedVersionKey); err != nil && !errors.Is(err, cache.ErrDisabled) {
		zap.L().Warn("invalidate feed cache failed", zap.Error(err))
	}
}
