package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxRole    = "session_role"
	CtxSubject = "session_subject"
)

// Role extracts the verified session role from the Gin context.
// This is set by RequireAuth.
func Role(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxRole))
}

// Subject extracts the verified session subject ("admin" or a project id)
// from the Gin context. This is set by RequireAuth.
func Subject(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxSubject))
}
