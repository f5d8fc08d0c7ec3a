package search

import (
	"net/http"
	"strings"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/post"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	TypeAll   = "all"
	TypeUsers = "users"
	TypePosts = "posts"
)

// Search matches q as a case-insensitive substring. Users and posts are
// paginated independently with the same page and limit.
func (h *SearchHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		utils.Error(c, http.StatusBadRequest, "Search query is required")
		return
	}

	kind := c.DefaultQuery("type", TypeAll)
	if kind != TypeAll && kind != TypeUsers && kind != TypePosts {
		utils.Error(c, http.StatusBadRequest, "Invalid search type")
		return
	}

	page, limit := utils.Page(c, defaultPageSize, maxPageSize)
	offset := utils.Offset(page, limit)
	pattern := utils.ContainsPattern(q)
	ctx := c.Request.Context()
	db := h.svc.DB.WithContext(ctx)

	// only the requested categories appear in the body
	results := gin.H{}
	if kind == TypeAll || kind == TypeUsers {
		var users []models.User
		err := db.Select("id, name, profile_picture, job_title, company, location").
			Where("is_active = ?", true).
			Where("(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(job_title) LIKE ? ESCAPE '!' OR LOWER(company) LIKE ? ESCAPE '!' OR EXISTS (SELECT 1 FROM user_skills WHERE user_skills.user_id = users.id AND user_skills.skill LIKE ? ESCAPE '!'))",
				pattern, pattern, pattern, pattern).
			Order("id ASC").
			Offset(offset).Limit(limit).
			Find(&users).Error
		if err != nil {
			zap.L().Error("search users failed", zap.Error(err))
			utils.Fail(c, err, "")
			return
		}
		briefs := make([]models.UserBrief, len(users))
		for i := range users {
			briefs[i] = users[i].Brief()
			briefs[i].Company = users[i].Company
			briefs[i].Location = users[i].Location
		}
		results["users"] = briefs
	}

	if kind == TypeAll || kind == TypePosts {
		var posts []models.Post
		err := post.WithEngagement(db).
			Where("is_public = ?", true).
			Where("LOWER(content) LIKE ? ESCAPE '!'", pattern).
			Offset(offset).Limit(limit).
			Find(&posts).Error
		if err != nil {
			zap.L().Error("search posts failed", zap.Error(err))
			utils.Fail(c, err, "")
			return
		}
		views := make([]models.PostView, len(posts))
		for i := range posts {
			views[i] = posts[i].View()
		}
		results["posts"] = views
	}

	h.recordQuery(ctx, q)
	utils.Success(c, results)
}
