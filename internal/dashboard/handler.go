package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches the dashboard route. The caller has already applied the
// admin gate to the group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.overview)
}

func (h *Handler) overview(c *gin.Context) {
	ov, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"projects": ov.Projects,
		"todos":    ov.Todos,
		"stats":    ov.Stats,
	})
}
