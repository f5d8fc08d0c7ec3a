package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error aborts the request with {"message": message}. For 5xx responses the
// first non-nil err is echoed as "error".
func Error(c *gin.Context, status int, message string, errs ...error) {
	body := gin.H{"message": message}
	if status >= http.StatusInternalServerError {
		for _, err := range errs {
			if err != nil {
				body["error"] = err.Error()
				_ = c.Error(err)
				break
			}
		}
	}
	c.AbortWithStatusJSON(status, body)
}
