package user

import (
	"net/http"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/storage"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxAvatarSize = 5 << 20

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}
	if h.svc.Storage == nil {
		utils.Error(c, http.StatusServiceUnavailable, "Avatar upload is not available")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "avatar file is required")
		return
	}
	if fileHeader.Size > maxAvatarSize {
		utils.Error(c, http.StatusBadRequest, "avatar must be 5MB or smaller")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if _, ok := storage.AllowedImageTypes[contentType]; !ok {
		utils.Error(c, http.StatusBadRequest, "avatar must be a jpeg, png, gif or webp image")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "cannot read avatar file")
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	url, err := h.svc.Storage.UploadAvatar(ctx, userID, fileHeader.Size, file, contentType)
	if err != nil {
		zap.L().Error("upload avatar failed", zap.Uint("user_id", userID), zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	if err := h.svc.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Update("profile_picture", url).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}
	utils.Success(c, gin.H{"profilePicture": url})
}
