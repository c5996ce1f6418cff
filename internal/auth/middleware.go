package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clientdeck/portal-backend/internal/auth/domain"
)

// RequireAuth validates the Bearer session token and stores the verified
// role and subject in the request context. Every protected route goes
// through this; role and subject are never read from request bodies.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			c.Abort()
			return
		}

		claims, err := ParseToken(token, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxRole, claims.Role)
		c.Set(CtxSubject, claims.Subject)

		c.Next()
	}
}

// RequireAdmin permits only sessions whose verified role is admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireProjectAccess gates project-scoped routes: admins always pass, a
// client passes only when the token subject equals the path parameter.
func RequireProjectAccess(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := strings.TrimSpace(c.Param(param))

		switch Role(c) {
		case domain.RoleAdmin:
			c.Next()
		case domain.RoleClient:
			if target != "" && Subject(c) == target {
				c.Next()
				return
			}
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "access to this project is not allowed"})
			c.Abort()
		default:
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
			c.Abort()
		}
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
