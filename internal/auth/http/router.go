package http

import "github.com/gin-gonic/gin"

// Register attaches the login routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/admin", h.adminLogin)
	rg.POST("/client", h.clientLogin)
}
