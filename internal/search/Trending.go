package search

import (
	"context"
	"errors"
	"strings"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const trendingKey = "search:trending"

type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// seedTrending is served until live search traffic fills the sorted set.
var seedTrending = []TrendingQuery{
	{Query: "React Developer", Count: 245},
	{Query: "Node.js", Count: 189},
	{Query: "UI/UX Designer", Count: 156},
	{Query: "Full Stack", Count: 134},
	{Query: "JavaScript", Count: 128},
	{Query: "Product Manager", Count: 95},
	{Query: "Data Science", Count: 87},
	{Query: "DevOps", Count: 76},
}

func (h *SearchHandler) Trending(c *gin.Context) {
	utils.Success(c, h.trending(c.Request.Context(), h.svc.Config.TrendingLimit))
}

// trending returns at most limit queries ordered by count descending.
func (h *SearchHandler) trending(ctx context.Context, limit int) []TrendingQuery {
	if limit <= 0 {
		limit = len(seedTrending)
	}

	entries, err := h.svc.Cache.ZRevRangeWithScores(ctx, trendingKey, 0, int64(limit-1))
	if err != nil && !errors.Is(err, cache.ErrDisabled) {
		zap.L().Warn("read trending searches failed", zap.Error(err))
	}
	if err != nil || len(entries) == 0 {
		if limit > len(seedTrending) {
			limit = len(seedTrending)
		}
		out := make([]TrendingQuery, limit)
		copy(out, seedTrending)
		return out
	}

	out := make([]TrendingQuery, 0, len(entries))
	for _, z := range entries {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		out = append(out, TrendingQuery{Query: member, Count: int64(z.Score)})
	}
	return out
}

func (h *SearchHandler) recordQuery(ctx context.Context, q string) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return
	}
	if _, err := h.svc.Cache.ZIncrBy(ctx, trendingKey, 1, q); err != nil && !errors.Is(err, cache.ErrDisabled) {
		zap.L().Warn("record search query failed", zap.String("query", q), zap.Error(err))
	}
}
