package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clientdeck/portal-backend/internal/auth"
)

type sendMessageReq struct {
	Body          string  `json:"body"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
}

func (h *Handler) sendMessage(c *gin.Context) {
	projectID := strings.TrimSpace(c.Param("id"))

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	// Sender is the verified session role; the body carries no sender field.
	msg, err := h.chat.Send(c.Request.Context(), projectID, auth.Role(c), req.Body, req.AttachmentURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "message": msg})
}
