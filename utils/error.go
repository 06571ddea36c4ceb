package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses. Every rejection
// carries a stable machine-readable ErrorCode next to the human-readable
// message so clients can localize.
type ErrorResponse struct {
	Message   string `json:"error"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message:   "Internal Server Error",
					ErrorCode: "Internal",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response.
func JSONError(c *gin.Context, status int, message string, errorCode string) {
	logger := GetLogger()
	logger.Warn(message, zap.String("errorCode", errorCode))
	c.JSON(status, ErrorResponse{Message: message, ErrorCode: errorCode})
}
