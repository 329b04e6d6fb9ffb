package middleware

import (
	"net/http"

	"dfx-site/internal/auth"
	"dfx-site/internal/logger"
	"dfx-site/internal/models"

	"github.com/gin-gonic/gin"
)

/**
 * Admin API guard
 * @param {string} secret - server.admin_secret
 * @description
 * - Requests arriving on a Unix socket listener are trusted
 * - Other requests need a valid admin JWT in the Authorization header, 401 otherwise
 * - Without a configured secret only the Unix socket can reach the guarded routes
 */
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.FromLocalSocket(c.Request.Context()) {
			c.Next()
			return
		}
		token := auth.BearerToken(c.GetHeader("Authorization"))
		if err := auth.VerifyAdminToken(secret, token); err != nil {
			logger.Warnf("[%s] admin request rejected: %v", c.GetString(RequestIDKey), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Code:    "auth.unauthorized",
				Message: "Admin token required",
			})
			return
		}
		c.Next()
	}
}
