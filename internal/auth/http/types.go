package http

import "github.com/clientdeck/portal-backend/internal/auth/service"

// Handler bundles the dependencies for the login endpoints.
type Handler struct {
	svc *service.AuthService
}

func New(svc *service.AuthService) *Handler {
	return &Handler{svc: svc}
}

type adminLoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type clientLoginReq struct {
	ProjectID string `json:"project_id"`
	Password  string `json:"password"`
}
