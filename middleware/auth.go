package middleware

import (
	"net/http"
	"strings"

	"barberbook/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the identity middleware.
const (
	CtxCallerID   = "callerID"
	CtxCallerRole = "callerRole"
)

// CallerIdentity extracts the verified caller from a bearer token when one
// is present. A missing token is NOT an error: the request proceeds as a
// guest, and guest-specific throttling applies downstream. An invalid
// token, by contrast, is rejected.
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "malformed authorization header",
				"errorCode": "Forbidden",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		callerID, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "invalid or expired token",
				"errorCode": "Forbidden",
			})
			return
		}

		c.Set(CtxCallerID, callerID)
		c.Set(CtxCallerRole, role)
		c.Next()
	}
}

// RequireAuth aborts requests that did not present a valid token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CtxCallerID); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "authentication required",
				"errorCode": "Forbidden",
			})
			return
		}
		c.Next()
	}
}
