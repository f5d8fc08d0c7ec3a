package notification

import (
	"net/http"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MarkRead filters on id and recipient together, so another user's
// notification is indistinguishable from a missing one.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, ok := utils.ParseID(c, "notificationId")
	if !ok {
		utils.Error(c, http.StatusNotFound, "Notification not found")
		return
	}

	db := h.svc.DB.WithContext(c.Request.Context())
	var count int64
	if err := db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, userID).
		Count(&count).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}
	if count == 0 {
		utils.Error(c, http.StatusNotFound, "Notification not found")
		return
	}

	if err := db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, userID).
		Update("is_read", true).Error; err != nil {
		zap.L().Error("mark notification read failed", zap.Error(err), zap.Uint("id", id))
		utils.Fail(c, err, "")
		return
	}

	utils.Success(c, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead is a single bulk update, so repeating it updates nothing.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	result := h.svc.DB.WithContext(c.Request.Context()).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		zap.L().Error("mark all notifications read failed", zap.Error(result.Error), zap.Uint("user_id", userID))
		utils.Fail(c, result.Error, "")
		return
	}

	utils.Success(c, gin.H{
		"message": "All notifications marked as read",
		"updated": result.RowsAffected,
	})
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, ok := utils.ParseID(c, "notificationId")
	if !ok {
		utils.Error(c, http.StatusNotFound, "Notification not found")
		return
	}

	result := h.svc.DB.WithContext(c.Request.Context()).
		Where("id = ? AND recipient_id = ?", id, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		zap.L().Error("delete notification failed", zap.Error(result.Error), zap.Uint("id", id))
		utils.Fail(c, result.Error, "")
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Notification not found")
		return
	}

	utils.Success(c, gin.H{"message": "Notification deleted"})
}
