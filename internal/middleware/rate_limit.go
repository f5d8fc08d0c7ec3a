package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware allows limit requests per window per principal for
// action. It must run after authentication; a Redis failure lets the request through.
func RateLimitMiddleware(rdb *cache.RedisCache, action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		userID, err := utils.GetUserID(c)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, err.Error())
			return
		}
		key := fmt.Sprintf("rate:limit:%d:%s", userID, action)

		allowed, err := rdb.AllowRequest(c.Request.Context(), key, limit, window)
		if err != nil {
			if !errors.Is(err, cache.ErrDisabled) {
				zap.L().Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
			}
			c.Next()
			return
		}

		if !allowed {
			utils.Error(c, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}

		c.Next()
	}
}
