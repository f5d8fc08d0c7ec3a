package user

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func (h *UserHandler) Login(c *gin.Context) {
	var req validators.LoginUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx := c.Request.Context()
	var user models.User
	err := h.svc.DB.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		utils.Fail(c, err, "")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.IsActive {
		utils.Error(c, http.StatusUnauthorized, "Account is deactivated")
		return
	}

	token, err := utils.GenerateToken(h.svc.Config, user.ID, string(user.Role))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to generate token", err)
		return
	}

	user.LastActive = time.Now()
	if err := h.svc.DB.WithContext(ctx).Model(&user).UpdateColumn("last_active", user.LastActive).Error; err != nil {
		zap.L().Warn("update last_active failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	utils.Success(c, gin.H{"token": token, "user": user})
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := utils.GetPrincipal(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}
	utils.Success(c, gin.H{"user": user})
}
