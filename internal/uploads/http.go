package uploads

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clientdeck/portal-backend/internal/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches the upload route to the authenticated group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing file field"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unreadable file"})
		return
	}
	defer src.Close()

	rec, url, err := h.svc.Save(c.Request.Context(), fileHeader.Filename, src, auth.Role(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":       true,
		"url":      url,
		"filename": rec.StoredName,
		"type":     fileHeader.Header.Get("Content-Type"),
	})
}
