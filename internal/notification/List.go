package notification

import (
	"net/http"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	page, limit := utils.Page(c, defaultPageSize, maxPageSize)
	db := h.svc.DB.WithContext(c.Request.Context())

	var notifications []models.Notification
	err = db.Where("recipient_id = ?", userID).
		Preload("Sender", func(db *gorm.DB) *gorm.DB { return db.Select("id, name, profile_picture, job_title") }).
		Preload("RelatedPost", func(db *gorm.DB) *gorm.DB { return db.Select("id, content") }).
		Order("created_at DESC, id DESC").
		Offset(utils.Offset(page, limit)).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		zap.L().Error("list notifications failed", zap.Error(err), zap.Uint("user_id", userID))
		utils.Fail(c, err, "")
		return
	}

	var total, unread int64
	if err := db.Model(&models.Notification{}).Where("recipient_id = ?", userID).Count(&total).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}
	if err := db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = ?", userID, false).Count(&unread).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}

	views := make([]models.NotificationView, len(notifications))
	for i := range notifications {
		views[i] = notifications[i].View()
	}

	utils.Success(c, models.NotificationPage{
		Notifications: views,
		UnreadCount:   unread,
		Pagination: models.Pagination{
			CurrentPage: page,
			TotalPages:  utils.TotalPages(total, limit),
			Total:       total,
		},
	})
}
