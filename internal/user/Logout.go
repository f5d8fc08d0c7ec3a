package user

import (
	"errors"
	"net/http"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *UserHandler) Logout(c *gin.Context) {
	raw, ok := c.Get(utils.ContextTokenKey)
	claims, _ := raw.(*utils.Claims)
	if !ok || claims == nil {
		utils.Error(c, http.StatusUnauthorized, "missing token")
		return
	}

	if err := utils.AddTokenToBlacklist(c.Request.Context(), h.svc.Cache, claims); err != nil {
		if errors.Is(err, cache.ErrDisabled) {
			utils.Error(c, http.StatusServiceUnavailable, "logout is unavailable right now")
			return
		}
		zap.L().Error("failed to add token to blacklist", zap.Error(err), zap.String("jti", claims.ID))
		utils.Error(c, http.StatusInternalServerError, "failed to logout", err)
		return
	}

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}
