package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProfileResponse struct {
	models.User
	ConnectionCount int64 `json:"connectionCount"`
	FollowerCount   int64 `json:"followerCount"`
	FollowingCount  int64 `json:"followingCount"`
	IsFollowing     bool  `json:"isFollowing"`
}

// GetProfile is public. Views by anyone but the owner are counted.
func (h *UserHandler) GetProfile(c *gin.Context) {
	targetID, ok := utils.ParseID(c, "userId")
	if !ok {
		utils.Error(c, http.StatusNotFound, "User not found")
		return
	}

	ctx := c.Request.Context()
	db := h.svc.DB.WithContext(ctx)

	var target models.User
	if err := db.Where("id = ? AND is_active = ?", targetID, true).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "User not found")
		} else {
			utils.Fail(c, err, "")
		}
		return
	}

	viewerID, _ := utils.GetUserID(c)
	if viewerID != target.ID {
		recordProfileView(ctx, h.svc.DB, h.svc.Cache, target.ID)
		target.ProfileViews++
	}

	resp := ProfileResponse{User: target}
	if err := h.profileCounts(db, &resp, viewerID); err != nil {
		zap.L().Error("load profile counts failed", zap.Uint("user_id", target.ID), zap.Error(err))
		utils.Fail(c, err, "")
		return
	}

	utils.Success(c, resp)
}

func (h *UserHandler) profileCounts(db *gorm.DB, resp *ProfileResponse, viewerID uint) error {
	targetID := resp.ID
	if err := db.Model(&models.Connection{}).
		Where("status = ? AND (requester_id = ? OR addressee_id = ?)", models.ConnectionAccepted, targetID, targetID).
		Count(&resp.ConnectionCount).Error; err != nil {
		return err
	}
	if err := db.Model(&models.UserFollow{}).Where("followed_id = ?", targetID).Count(&resp.FollowerCount).Error; err != nil {
		return err
	}
	if err := db.Model(&models.UserFollow{}).Where("follower_id = ?", targetID).Count(&resp.FollowingCount).Error; err != nil {
		return err
	}
	if viewerID != 0 && viewerID != targetID {
		var n int64
		if err := db.Model(&models.UserFollow{}).
			Where("follower_id = ? AND followed_id = ?", viewerID, targetID).Count(&n).Error; err != nil {
			return err
		}
		resp.IsFollowing = n > 0
	}
	return nil
}

func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req validators.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid profile fields")
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			utils.Error(c, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		updates["name"] = name
	}
	if req.Bio != nil {
		updates["bio"] = strings.TrimSpace(*req.Bio)
	}
	if req.JobTitle != nil {
		updates["job_title"] = strings.TrimSpace(*req.JobTitle)
	}
	if req.Company != nil {
		updates["company"] = strings.TrimSpace(*req.Company)
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Skills != nil {
		updates["skills"] = normalizeSkills(*req.Skills)
	}

	if len(updates) == 0 {
		utils.Error(c, http.StatusBadRequest, "At least one field is required")
		return
	}

	db := h.svc.DB.WithContext(c.Request.Context())
	err = db.Transaction(func(tx *gorm.DB) error {
		// Updates with a map bypasses serializers, so skills go through the struct.
		if skills, ok := updates["skills"]; ok {
			delete(updates, "skills")
			if err := tx.Model(&models.User{ID: userID}).Select("Skills").
				Updates(&models.User{Skills: skills.([]string)}).Error; err != nil {
				return err
			}
			if err := models.ReplaceSkills(tx, userID, skills.([]string)); err != nil {
				return err
			}
		}
		if len(updates) > 0 {
			return tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
		}
		return nil
	})
	if err != nil {
		zap.L().Error("update profile failed", zap.Uint("user_id", userID), zap.Error(err))
		utils.Fail(c, err, "")
		return
	}

	var updated models.User
	if err := db.First(&updated, userID).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}
	utils.Success(c, updated)
}

// DeactivateAccount soft-deletes the principal; existing tokens stop working.
func (h *UserHandler) DeactivateAccount(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}
	if err := h.svc.DB.WithContext(c.Request.Context()).Model(&models.User{}).
		Where("id = ?", userID).UpdateColumn("is_active", false).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}
	utils.Success(c, gin.H{"message": "Account deactivated"})
}

func normalizeSkills(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
