package post

import (
	"errors"
	"net/http"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeletePost removes one of the caller's posts with its likes, comments
// and shares. Notifications that pointed at it lose the reference.
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}
	postID, ok := utils.ParseID(c, "postId")
	if !ok {
		utils.Error(c, http.StatusNotFound, "Post not found")
		return
	}

	ctx := c.Request.Context()
	err = h.svc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ? AND author_id = ?", postID, userID).First(&post).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Notification{}).Where("related_post_id = ?", post.ID).
			Update("related_post_id", nil).Error; err != nil {
			return err
		}
		return tx.Select("Likes", "Shares", "Comments").Delete(&post).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		zap.L().Error("delete post failed", zap.Error(err), zap.Uint("post", postID))
		utils.Fail(c, err, "")
		return
	}

	h.invalidateFeed(ctx)
	zap.L().Info("post deleted", zap.Uint("post", postID), zap.Uint("author", userID))
	utils.Success(c, gin.H{"message": "Post deleted"})
}
