package user

import (
	"net/http"
	"strings"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/db"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (h *UserHandler) Register(c *gin.Context) {
	var req validators.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Name, a valid email and a password of at least 6 characters are required")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		utils.Error(c, http.StatusBadRequest, "Name is required")
		return
	}

	var exists int64
	if err := h.svc.DB.WithContext(c.Request.Context()).Model(&models.User{}).
		Where("email = ?", email).Count(&exists).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}
	if exists > 0 {
		utils.Error(c, http.StatusConflict, "User already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("hash password failed", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	role := models.RoleMember
	if h.svc.Config.IsAdminEmail(email) {
		role = models.RoleAdmin
	}

	user := models.User{
		Name:       name,
		Email:      email,
		Password:   string(hashed),
		Bio:        strings.TrimSpace(req.Bio),
		Skills:     []string{},
		IsActive:   true,
		Role:       role,
		LastActive: time.Now(),
	}
	if err := h.svc.DB.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if db.IsDuplicateKey(err) {
			utils.Error(c, http.StatusConflict, "User already exists")
			return
		}
		utils.Fail(c, err, "")
		return
	}

	token, err := utils.GenerateToken(h.svc.Config, user.ID, string(user.Role))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to generate token", err)
		return
	}

	zap.L().Info("user registered", zap.Uint("user_id", user.ID))
	utils.Created(c, gin.H{"token": token, "user": user})
}
