package post

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var mentionPattern = regexp.MustCompile(`@(\d+)\b`)

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req validators.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Content is required")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		utils.Error(c, http.StatusBadRequest, "Content is required")
		return
	}
	if limit := h.svc.Config.PostMaxLength; utf8.RuneCountInString(content) > limit {
		utils.Error(c, http.StatusBadRequest, fmt.Sprintf("Content must be at most %d characters", limit))
		return
	}

	post := models.Post{
		AuthorID: userID,
		Content:  content,
		IsPublic: req.IsPublic == nil || *req.IsPublic,
	}

	ctx := c.Request.Context()
	if err := h.svc.DB.WithContext(ctx).Omit("Likes", "Shares", "Comments", "Author").Create(&post).Error; err != nil {
		zap.L().Error("create post db error", zap.Error(err), zap.Uint("author", userID))
		utils.Fail(c, err, "")
		return
	}

	var created models.Post
	if err := WithEngagement(h.svc.DB.WithContext(ctx)).First(&created, post.ID).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}

	h.invalidateFeed(ctx)
	h.notifyMentions(c, &created)

	utils.Created(c, created.View())
}

// MentionedUserIDs returns the distinct ids written as @<id> in content,
// in order of first appearance.
func MentionedUserIDs(content string) []uint {
	var ids []uint
	seen := make(map[uint]bool)
	for _, m := range mentionPattern.FindAllStringSubmatch(content, -1) {
		id, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil || id == 0 || seen[uint(id)] {
			continue
		}
		seen[uint(id)] = true
		ids = append(ids, uint(id))
	}
	return ids
}

func (h *PostHandler) notifyMentions(c *gin.Context, post *models.Post) {
	ids := MentionedUserIDs(post.Content)
	if len(ids) == 0 {
		return
	}

	ctx := c.Request.Context()
	var mentioned []uint
	if err := h.svc.DB.WithContext(ctx).Model(&models.User{}).
		Where("id IN ? AND is_active = ?", ids, true).
		Pluck("id", &mentioned).Error; err != nil {
		zap.L().Warn("resolve mentions failed", zap.Error(err), zap.Uint("post", post.ID))
		return
	}

	postID := post.ID
	for _, id := range mentioned {
		h.svc.Notifier.Dispatch(ctx, models.NotificationMsg{
			RecipientID: id,
			SenderID:    post.AuthorID,
			Type:        models.NotificationPostMention,
			PostID:      &postID,
		})
	}
}
