package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrStore        = errors.New("store error")
)

// StatusOf maps an error onto the HTTP status of its taxonomy class.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes err with the status of its class. message is used for the
// body; when empty the error text is used for 4xx and "Server error" for 5xx.
func Fail(c *gin.Context, err error, message string) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		if message == "" {
			message = "Server error"
		}
		Error(c, status, message, err)
		return
	}
	if message == "" {
		message = err.Error()
	}
	Error(c, status, message)
}
