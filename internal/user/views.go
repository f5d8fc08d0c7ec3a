package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DateLayout       = "2006-01-02"
	profileViewTTL   = 8 * 24 * time.Hour
	ProfileViewsDays = 7
)

func ProfileViewKey(userID uint, day time.Time) string {
	return fmt.Sprintf("profile:views:%d:%s", userID, day.UTC().Format(DateLayout))
}

// recordProfileView bumps the lifetime counter and today's bucket.
func recordProfileView(ctx context.Context, db *gorm.DB, rdb *cache.RedisCache, userID uint) {
	if err := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("profile_views", gorm.Expr("profile_views + 1")).Error; err != nil {
		zap.L().Warn("increment profile_views failed", zap.Uint("user_id", userID), zap.Error(err))
	}

	if _, err := rdb.IncrWithTTL(ctx, ProfileViewKey(userID, time.Now()), profileViewTTL); err != nil && !errors.Is(err, cache.ErrDisabled) {
		zap.L().Warn("record daily profile view failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

// ProfileViewSeries returns views per day for the days ending at now, oldest
// first. Missing buckets and an unavailable cache read as zero.
func ProfileViewSeries(ctx context.Context, rdb *cache.RedisCache, userID uint, days int, now time.Time) []models.DailyViews {
	series := make([]models.DailyViews, days)
	keys := make([]string, days)
	for i := 0; i < days; i++ {
		day := now.UTC().AddDate(0, 0, i-days+1)
		series[i] = models.DailyViews{Date: day.Format(DateLayout)}
		keys[i] = ProfileViewKey(userID, day)
	}

	values, err := rdb.MGet(ctx, keys...)
	if err != nil {
		if !errors.Is(err, cache.ErrDisabled) {
			zap.L().Warn("read profile views failed", zap.Uint("user_id", userID), zap.Error(err))
		}
		return series
	}
	for i, v := range values {
		if s, ok := v.(string); ok {
			n, _ := strconv.ParseInt(s, 10, 64)
			series[i].Views = n
		}
	}
	return series
}
