package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/config"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const lastActiveInterval = 5 * time.Minute

var errNoToken = errors.New("no token, authorization denied")

// Authenticator resolves bearer tokens into principals.
type Authenticator struct {
	cfg   *config.Config
	db    *gorm.DB
	cache *cache.RedisCache
}

func NewAuthenticator(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache) *Authenticator {
	return &Authenticator{cfg: cfg, db: db, cache: rdb}
}

// Required rejects the request with 401 unless it carries a valid token of
// an existing, active user.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims, err := a.authenticate(c)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, err.Error())
			return
		}
		setPrincipal(c, user, claims)
		c.Next()
	}
}

// Optional sets the principal when a valid token is present and otherwise
// lets the request through anonymously.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if user, claims, err := a.authenticate(c); err == nil {
				setPrincipal(c, user, claims)
			}
		}
		c.Next()
	}
}

func setPrincipal(c *gin.Context, user *models.User, claims *utils.Claims) {
	c.Set(utils.ContextUserIDKey, user.ID)
	c.Set(utils.ContextUserKey, user)
	c.Set(utils.ContextTokenKey, claims)
}

func (a *Authenticator) authenticate(c *gin.Context) (*models.User, *utils.Claims, error) {
	tokenString, err := bearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return nil, nil, err
	}

	claims, err := utils.ParseToken(a.cfg, tokenString)
	if err != nil {
		return nil, nil, errors.New("token is not valid")
	}

	ctx := c.Request.Context()
	revoked, err := utils.IsTokenBlacklisted(ctx, a.cache, claims)
	if err != nil {
		if !errors.Is(err, cache.ErrDisabled) {
			zap.L().Warn("blacklist check failed, allowing token",
				zap.String("token_part", utils.GetTokenHash(tokenString)), zap.Error(err))
		}
	} else if revoked {
		return nil, nil, errors.New("token has been revoked")
	}

	var user models.User
	if err := a.db.WithContext(ctx).First(&user, claims.UserID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("load principal failed", zap.Uint("user_id", claims.UserID), zap.Error(err))
		}
		return nil, nil, errors.New("token is not valid")
	}
	if !user.IsActive {
		return nil, nil, errors.New("account is deactivated")
	}

	a.touchLastActive(ctx, user.ID)
	return &user, claims, nil
}

// touchLastActive writes last_active at most once per lastActiveInterval per user.
func (a *Authenticator) touchLastActive(ctx context.Context, userID uint) {
	fresh, err := a.cache.SetNX(ctx, fmt.Sprintf("user:active:%d", userID), "1", lastActiveInterval)
	if err == nil && !fresh {
		return
	}
	if err := a.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("last_active", time.Now()).Error; err != nil {
		zap.L().Warn("update last_active failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errNoToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("incorrectly formatted authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// RequireAdmin must run after Required.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.GetPrincipal(c)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, err.Error())
			return
		}
		if !user.IsAdmin() {
			utils.Error(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}
