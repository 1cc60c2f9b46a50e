package middleware

import (
	"net/http"
	"strings"

	"datecourse/pkg/utils"
	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware rejects requests without a valid bearer token and stores the
// caller's id under "user_id".
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			_ = c.Error(err)
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// AdminKeyMiddleware guards catalogue writes with the X-Admin-Key header, checked
// against a bcrypt hash. An empty hash disables the routes entirely.
func AdminKeyMiddleware(hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Admin-Key")
		if hash == "" || key == "" || utils.CompareSecret(hash, key) != nil {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: admin key required")
			c.Abort()
			return
		}
		c.Next()
	}
}
