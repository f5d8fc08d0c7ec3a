package user

import (
	"net/http"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (h *UserHandler) ChangePassword(c *gin.Context) {
	user, err := utils.GetPrincipal(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "oldPassword and a newPassword of at least 6 characters are required")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		utils.Error(c, http.StatusUnauthorized, "Old password is incorrect")
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("hash password failed", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to hash new password", err)
		return
	}

	if err := h.svc.DB.WithContext(c.Request.Context()).Model(&models.User{}).
		Where("id = ?", user.ID).Update("password", string(newHash)).Error; err != nil {
		utils.Fail(c, err, "failed to update password")
		return
	}

	utils.Success(c, gin.H{"message": "Password changed successfully"})
}
