package todos

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Store is the repository surface the handlers need; Repo implements it.
type Store interface {
	Create(ctx context.Context, task, priority string) (*Todo, error)
	SetDone(ctx context.Context, id int64, done bool) (*Todo, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Register attaches the todo routes. The caller has already applied the
// admin gate to the group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/todos", h.create)
	rg.PATCH("/todos/:id", h.setDone)
	rg.DELETE("/todos/:id", h.delete)
}

type createReq struct {
	Task     string `json:"task"`
	Priority string `json:"priority"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Task) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	priority := req.Priority
	switch priority {
	case "":
		priority = PriorityLow
	case PriorityLow, PriorityHigh:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "priority must be low or high"})
		return
	}

	t, err := h.store.Create(c.Request.Context(), strings.TrimSpace(req.Task), priority)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "todo": t})
}

type setDoneReq struct {
	Done bool `json:"done"`
}

func (h *Handler) setDone(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid todo id"})
		return
	}

	var req setDoneReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	t, err := h.store.SetDone(c.Request.Context(), id, req.Done)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "todo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "todo": t})
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid todo id"})
		return
	}

	ok, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "todo not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
