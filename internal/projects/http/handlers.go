package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clientdeck/portal-backend/internal/projects/domain"
	"github.com/clientdeck/portal-backend/internal/projects/repository"

	"github.com/clientdeck/portal-backend/internal/auth"
)

// respondError maps domain errors onto status codes; everything it does not
// recognize becomes a 500.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}

type createReq struct {
	Name     string  `json:"name"`
	Price    int64   `json:"price"`
	Deadline *string `json:"deadline,omitempty"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		respondError(c, err)
		return
	}

	_, creds, err := h.svc.Create(c.Request.Context(), strings.TrimSpace(req.Name), req.Price, deadline)
	if err != nil {
		respondError(c, err)
		return
	}

	// The plaintext password is shown exactly once; there is no read path
	// that returns it again.
	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": creds.ID, "password": creds.Password})
}

type updateReq struct {
	Name       *string        `json:"name"`
	Status     *string        `json:"status"`
	Price      *int64         `json:"price"`
	PaidAmount *int64         `json:"paid_amount"`
	Deadline   *string        `json:"deadline"`
	Stages     []domain.Stage `json:"stages"`
	Archived   *bool          `json:"archived"`
}

func (h *Handler) update(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	patch := repository.Patch{
		Name:       req.Name,
		Price:      req.Price,
		PaidAmount: req.PaidAmount,
		Stages:     req.Stages,
		Archived:   req.Archived,
	}

	if req.Status != nil {
		s := domain.Status(*req.Status)
		patch.Status = &s
	}

	if req.Deadline != nil {
		patch.DeadlineSet = true
		if *req.Deadline != "" {
			t, err := parseDeadline(req.Deadline)
			if err != nil {
				respondError(c, err)
				return
			}
			patch.Deadline = t
		}
	}

	p, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) detail(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	detail, err := h.svc.Detail(c.Request.Context(), id, auth.Role(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"project":  detail.Project,
		"messages": detail.Messages,
		"files":    detail.Files,
	})
}

func (h *Handler) delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// parseDeadline turns an optional RFC 3339 string into a timestamp. A
// malformed value is a 400, not a parse panic.
func parseDeadline(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, domain.NewValidationError("deadline", "must be RFC 3339, e.g. 2026-01-31T00:00:00Z")
	}
	return &t, nil
}
