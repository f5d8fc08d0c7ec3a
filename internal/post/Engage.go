package post

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/db"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxCommentLength = 1000

// LikePost toggles the caller's like. Only the transition to liked notifies.
func (h *PostHandler) LikePost(c *gin.Context) {
	post, userID, ok := h.loadTarget(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	tx := h.svc.DB.WithContext(ctx)

	var existing int64
	if err := tx.Table("post_likes").Where("post_id = ? AND user_id = ?", post.ID, userID).Count(&existing).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}

	liked := existing == 0
	var err error
	if liked {
		err = tx.Exec("INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)", post.ID, userID).Error
		if db.IsDuplicateKey(err) {
			err = nil
		}
	} else {
		err = tx.Exec("DELETE FROM post_likes WHERE post_id = ? AND user_id = ?", post.ID, userID).Error
	}
	if err != nil {
		zap.L().Error("toggle like failed", zap.Error(err), zap.Uint("post", post.ID), zap.Uint("user", userID))
		utils.Fail(c, err, "")
		return
	}

	var likes int64
	if err := tx.Table("post_likes").Where("post_id = ?", post.ID).Count(&likes).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}

	h.invalidateFeed(ctx)
	if liked {
		postID := post.ID
		h.svc.Notifier.Dispatch(ctx, models.NotificationMsg{
			RecipientID: post.AuthorID,
			SenderID:    userID,
			Type:        models.NotificationLike,
			PostID:      &postID,
		})
	}

	utils.Success(c, gin.H{"liked": liked, "likesCount": likes})
}

func (h *PostHandler) CommentPost(c *gin.Context) {
	post, userID, ok := h.loadTarget(c)
	if !ok {
		return
	}

	var req validators.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Comment text is required")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		utils.Error(c, http.StatusBadRequest, "Comment text is required")
		return
	}
	if len([]rune(text)) > maxCommentLength {
		utils.Error(c, http.StatusBadRequest, "Comment is too long")
		return
	}

	ctx := c.Request.Context()
	comment := models.Comment{PostID: post.ID, AuthorID: userID, Text: text}
	if err := h.svc.DB.WithContext(ctx).Omit("Author").Create(&comment).Error; err != nil {
		zap.L().Error("create comment failed", zap.Error(err), zap.Uint("post", post.ID))
		utils.Fail(c, err, "")
		return
	}

	h.invalidateFeed(ctx)
	postID := post.ID
	h.svc.Notifier.Dispatch(ctx, models.NotificationMsg{
		RecipientID: post.AuthorID,
		SenderID:    userID,
		Type:        models.NotificationComment,
		PostID:      &postID,
	})

	author := models.UserBrief{ID: userID}
	if principal, err := utils.GetPrincipal(c); err == nil {
		author = principal.Brief()
	}
	utils.Created(c, models.CommentView{
		ID:        comment.ID,
		Author:    author,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	})
}

// SharePost records a share once per user; repeating it is a no-op.
func (h *PostHandler) SharePost(c *gin.Context) {
	post, userID, ok := h.loadTarget(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	tx := h.svc.DB.WithContext(ctx)
	err := tx.Exec("INSERT INTO post_shares (post_id, user_id) VALUES (?, ?)", post.ID, userID).Error
	if err != nil && !db.IsDuplicateKey(err) {
		zap.L().Error("share post failed", zap.Error(err), zap.Uint("post", post.ID))
		utils.Fail(c, err, "")
		return
	}

	var shares int64
	if err := tx.Table("post_shares").Where("post_id = ?", post.ID).Count(&shares).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}

	h.invalidateFeed(ctx)
	utils.Success(c, gin.H{"shared": true, "sharesCount": shares})
}

// loadTarget resolves :postId to a post the caller may see. It writes the
// error response itself and reports false on failure.
func (h *PostHandler) loadTarget(c *gin.Context) (*models.Post, uint, bool) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return nil, 0, false
	}
	postID, ok := utils.ParseID(c, "postId")
	if !ok {
		utils.Error(c, http.StatusBadRequest, "Invalid post id")
		return nil, 0, false
	}

	var post models.Post
	err = h.svc.DB.WithContext(c.Request.Context()).
		Where("id = ? AND (is_public = ? OR author_id = ?)", postID, true, userID).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Post not found")
		return nil, 0, false
	}
	if err != nil {
		utils.Fail(c, err, "")
		return nil, 0, false
	}
	return &post, userID, true
}
