package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/user"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dashboard reports platform-wide totals. The route is admin-only.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.dashboard(c.Request.Context())
	if err != nil {
		utils.Fail(c, err, "")
		return
	}
	utils.Success(c, dashboard)
}

func (h *AnalyticsHandler) dashboard(ctx context.Context) (*models.Dashboard, error) {
	db := h.svc.DB.WithContext(ctx)
	now := h.now()
	var out models.Dashboard

	if err := db.Model(&models.User{}).Where("is_active = ?", true).Count(&out.Overview.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if err := db.Model(&models.Post{}).Where("is_public = ?", true).Count(&out.Overview.TotalPosts).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	// one row per accepted pair, listed by both users
	var accepted int64
	if err := db.Model(&models.Connection{}).Where("status = ?", models.ConnectionAccepted).Count(&accepted).Error; err != nil {
		return nil, fmt.Errorf("count connections: %w", err)
	}
	out.Overview.TotalConnections = 2 * accepted

	if err := db.Model(&models.User{}).
		Where("is_active = ? AND last_active >= ?", true, now.Add(-activeWindow)).
		Count(&out.Overview.ActiveUsers).Error; err != nil {
		return nil, fmt.Errorf("count active users: %w", err)
	}

	growth, err := userGrowth(db, now)
	if err != nil {
		return nil, err
	}
	out.UserGrowth = growth

	engagement, err := engagementStats(db)
	if err != nil {
		return nil, err
	}
	out.Engagement = engagement
	return &out, nil
}

// userGrowth counts active users created per UTC day over the trailing
// window, oldest first. Days without sign-ups are omitted.
func userGrowth(db *gorm.DB, now time.Time) ([]models.DailyCount, error) {
	var created []time.Time
	if err := db.Model(&models.User{}).
		Where("is_active = ? AND created_at >= ?", true, now.AddDate(0, 0, -growthDays)).
		Pluck("created_at", &created).Error; err != nil {
		return nil, fmt.Errorf("load user growth: %w", err)
	}

	perDay := make(map[string]int64)
	for _, t := range created {
		perDay[t.UTC().Format(user.DateLayout)]++
	}
	growth := make([]models.DailyCount, 0, len(perDay))
	for day, n := range perDay {
		growth = append(growth, models.DailyCount{Date: day, Users: n})
	}
	sort.Slice(growth, func(i, j int) bool { return growth[i].Date < growth[j].Date })
	return growth, nil
}

func engagementStats(db *gorm.DB) (models.EngagementStats, error) {
	var stats models.EngagementStats
	var posts int64
	if err := db.Model(&models.Post{}).Count(&posts).Error; err != nil {
		return stats, fmt.Errorf("count posts: %w", err)
	}
	if err := db.Table("post_likes").Count(&stats.TotalLikes).Error; err != nil {
		return stats, fmt.Errorf("count likes: %w", err)
	}
	if err := db.Model(&models.Comment{}).Count(&stats.TotalComments).Error; err != nil {
		return stats, fmt.Errorf("count comments: %w", err)
	}
	if err := db.Table("post_shares").Count(&stats.TotalShares).Error; err != nil {
		return stats, fmt.Errorf("count shares: %w", err)
	}
	if posts > 0 {
		stats.AvgLikes = float64(stats.TotalLikes) / float64(posts)
		stats.AvgComments = float64(stats.TotalComments) / float64(posts)
		stats.AvgShares = float64(stats.TotalShares) / float64(posts)
	}
	return stats, nil
}
