package analytics

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/post"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/user"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
)

// Personal reports analytics over the caller's own posts and profile.
func (h *AnalyticsHandler) Personal(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	out, err := h.personal(c.Request.Context(), principal)
	if err != nil {
		utils.Fail(c, err, "")
		return
	}
	utils.Success(c, out)
}

func (h *AnalyticsHandler) personal(ctx context.Context, principal *models.User) (*models.PersonalAnalytics, error) {
	var posts []models.Post
	if err := post.WithEngagement(h.svc.DB.WithContext(ctx)).
		Where("author_id = ?", principal.ID).
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	views := make([]models.PostView, len(posts))
	for i := range posts {
		views[i] = posts[i].View()
	}

	out := &models.PersonalAnalytics{
		EngagementOverTime: engagementOverTime(views),
		TopPosts:           topPosts(views, topPostLimit),
		ProfileViews:       user.ProfileViewSeries(ctx, h.svc.Cache, principal.ID, user.ProfileViewsDays, h.now()),
		Summary:            summarize(views),
	}
	out.Summary.ProfileViews = principal.ProfileViews
	return out, nil
}

// engagementOverTime sums engagement per UTC creation day, oldest first.
func engagementOverTime(views []models.PostView) []models.DailyEngagement {
	perDay := make(map[string]*models.DailyEngagement)
	for _, v := range views {
		day := v.CreatedAt.UTC().Format(user.DateLayout)
		d, ok := perDay[day]
		if !ok {
			d = &models.DailyEngagement{Date: day}
			perDay[day] = d
		}
		d.TotalEngagement += int64(v.Engagement())
		d.PostCount++
	}

	series := make([]models.DailyEngagement, 0, len(perDay))
	for _, d := range perDay {
		series = append(series, *d)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// topPosts orders by likes, then comments, then shares, newest first on a
// full tie.
func topPosts(views []models.PostView, limit int) []models.PostView {
	ranked := make([]models.PostView, len(views))
	copy(ranked, views)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.LikesCount != b.LikesCount {
			return a.LikesCount > b.LikesCount
		}
		if a.CommentsCount != b.CommentsCount {
			return a.CommentsCount > b.CommentsCount
		}
		if a.SharesCount != b.SharesCount {
			return a.SharesCount > b.SharesCount
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func summarize(views []models.PostView) models.PersonalSummary {
	s := models.PersonalSummary{TotalPosts: int64(len(views))}
	for _, v := range views {
		s.TotalLikes += int64(v.LikesCount)
		s.TotalComments += int64(v.CommentsCount)
		s.TotalShares += int64(v.SharesCount)
	}
	return s
}
