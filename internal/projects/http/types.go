package http

import "github.com/clientdeck/portal-backend/internal/projects/service"

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc  *service.ProjectService
	chat *service.ChatService
}

func New(svc *service.ProjectService, chat *service.ChatService) *Handler {
	return &Handler{svc: svc, chat: chat}
}
