package http

import (
	"github.com/gin-gonic/gin"

	"github.com/clientdeck/portal-backend/internal/auth"
)

// Register attaches the project routes to the authenticated group. Admin-only
// mutations and the project-scoped detail/chat routes go through their
// respective gates here and nowhere else.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/projects", auth.RequireAdmin(), h.create)
	rg.PUT("/projects/:id", auth.RequireAdmin(), h.update)
	rg.DELETE("/projects/:id", auth.RequireAdmin(), h.delete)

	rg.GET("/project/:id", auth.RequireProjectAccess("id"), h.detail)
	rg.POST("/chat/:id", auth.RequireProjectAccess("id"), h.sendMessage)
}
