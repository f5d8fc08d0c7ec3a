package utils

import (
	"errors"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "user"
	ContextTokenKey  = "token"
)

func GetUserID(c *gin.Context) (uint, error) {
	uidRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, errors.New("not authenticated")
	}

	uid, ok := uidRaw.(uint)
	if !ok {
		return 0, errors.New("invalid user id type")
	}
	return uid, nil
}

// GetPrincipal returns the user loaded by the auth middleware.
func GetPrincipal(c *gin.Context) (*models.User, error) {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, errors.New("not authenticated")
	}
	user, ok := raw.(*models.User)
	if !ok || user == nil {
		return nil, errors.New("invalid principal type")
	}
	return user, nil
}
