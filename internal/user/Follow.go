package user

import (
	"errors"
	"net/http"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/db"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (h *UserHandler) FollowUser(c *gin.Context) {
	targetID, ok := utils.ParseID(c, "userId")
	if !ok {
		utils.Error(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	me, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}
	if me == targetID {
		utils.Error(c, http.StatusBadRequest, "You can't follow yourself")
		return
	}

	ctx := c.Request.Context()
	if err := h.requireActiveUser(c, targetID); err != nil {
		return
	}

	followRel := models.UserFollow{FollowerID: me, FollowedID: targetID}
	if err := h.svc.DB.WithContext(ctx).Create(&followRel).Error; err != nil {
		if db.IsDuplicateKey(err) {
			utils.Error(c, http.StatusConflict, "Already following this user")
			return
		}
		zap.L().Error("follow user failed", zap.Error(err), zap.Uint("me", me), zap.Uint("target", targetID))
		utils.Fail(c, err, "")
		return
	}

	h.svc.Notifier.Dispatch(ctx, models.NotificationMsg{
		RecipientID: targetID,
		SenderID:    me,
		Type:        models.NotificationFollow,
	})

	utils.Success(c, gin.H{"message": "Followed successfully"})
}

func (h *UserHandler) UnfollowUser(c *gin.Context) {
	targetID, ok := utils.ParseID(c, "userId")
	if !ok {
		utils.Error(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	me, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	result := h.svc.DB.WithContext(c.Request.Context()).
		Where("follower_id = ? AND followed_id = ?", me, targetID).
		Delete(&models.UserFollow{})
	if result.Error != nil {
		zap.L().Error("unfollow user failed", zap.Error(result.Error))
		utils.Fail(c, result.Error, "")
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Not following this user")
		return
	}
	utils.Success(c, gin.H{"message": "Unfollowed successfully"})
}

// requireActiveUser writes 404 and returns an error when id is not an active user.
func (h *UserHandler) requireActiveUser(c *gin.Context, id uint) error {
	var u models.User
	err := h.svc.DB.WithContext(c.Request.Context()).Select("id").
		Where("id = ? AND is_active = ?", id, true).First(&u).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(c, http.StatusNotFound, "User not found")
	case err != nil:
		utils.Fail(c, err, "")
	}
	return err
}
