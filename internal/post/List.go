package post

import (
	"net/http"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetPosts lists every public post, plus the viewer's own private posts
// when a valid token is supplied.
func (h *PostHandler) GetPosts(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID, _ := utils.GetUserID(c)

	var version string
	if viewerID == 0 {
		var views []models.PostView
		var ok bool
		if views, version, ok = h.cachedFeed(ctx); ok {
			utils.Success(c, views)
			return
		}
	}

	query := WithEngagement(h.svc.DB.WithContext(ctx))
	if viewerID == 0 {
		query = query.Where("is_public = ?", true)
	} else {
		query = query.Where("is_public = ? OR author_id = ?", true, viewerID)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}

	views := toViews(posts)
	if viewerID == 0 {
		h.storeFeed(ctx, version, views)
	}
	utils.Success(c, views)
}

// GetUserPosts lists one author's posts; private ones only for the author.
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	authorID, ok := utils.ParseID(c, "userId")
	if !ok {
		utils.Error(c, http.StatusBadRequest, "Invalid user id")
		return
	}
	viewerID, _ := utils.GetUserID(c)

	query := WithEngagement(h.svc.DB.WithContext(c.Request.Context())).Where("author_id = ?", authorID)
	if viewerID != authorID {
		query = query.Where("is_public = ?", true)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}
	utils.Success(c, toViews(posts))
}

// GetFollowingFeed lists public posts by the users the caller follows.
func (h *PostHandler) GetFollowingFeed(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}
	page, limit := utils.Page(c, 20, 100)

	db := h.svc.DB.WithContext(c.Request.Context())
	followed := db.Model(&models.UserFollow{}).Select("followed_id").Where("follower_id = ?", userID)

	var posts []models.Post
	if err := WithEngagement(db).
		Where("is_public = ? AND author_id IN (?)", true, followed).
		Offset(utils.Offset(page, limit)).Limit(limit).
		Find(&posts).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}
	utils.Success(c, toViews(posts))
}

func toViews(posts []models.Post) []models.PostView {
	views := make([]models.PostView, len(posts))
	for i := range posts {
		views[i] = posts[i].View()
	}
	return views
}
