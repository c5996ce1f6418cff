package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdeck/portal-backend/internal/auth"
	"github.com/clientdeck/portal-backend/internal/projects/domain"
	"github.com/clientdeck/portal-backend/internal/projects/repository"
	"github.com/clientdeck/portal-backend/internal/projects/service"
)

type stubProjectStore struct {
	byID map[string]*domain.Project
}

func newStubProjectStore() *stubProjectStore {
	return &stubProjectStore{byID: make(map[string]*domain.Project)}
}

func (s *stubProjectStore) Insert(_ context.Context, p *domain.Project) (*domain.Project, error) {
	stored := *p
	s.byID[p.ID] = &stored
	return &stored, nil
}

func (s *stubProjectStore) GetByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *stubProjectStore) List(context.Context) ([]domain.Project, error) { return nil, nil }

func (s *stubProjectStore) Update(_ context.Context, id string, patch repository.Patch) (*domain.Project, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	return p, nil
}

func (s *stubProjectStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.byID[id]; !ok {
		return false, nil
	}
	delete(s.byID, id)
	return true, nil
}

type stubMessageStore struct{}

func (stubMessageStore) List(context.Context, string) ([]domain.Message, error) { return nil, nil }
func (stubMessageStore) MarkRead(context.Context, string, string) error         { return nil }

type stubFileStore struct{}

func (stubFileStore) ListByProject(context.Context, string) ([]domain.FileRecord, error) {
	return nil, nil
}

type stubAppender struct {
	lastSender string
}

func (s *stubAppender) Append(_ context.Context, projectID, sender, body string, attachmentURL *string) (*domain.Message, error) {
	s.lastSender = sender
	return &domain.Message{ID: 1, ProjectID: projectID, Sender: sender, Body: body, AttachmentURL: attachmentURL}, nil
}

type stubAssociator struct{}

func (stubAssociator) Associate(context.Context, string, string) error { return nil }

// sessionRouter wires the handler behind a stand-in for RequireAuth that
// plants a fixed verified session.
func sessionRouter(store *stubProjectStore, appender *stubAppender, role, subject string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewProjectService(store, stubMessageStore{}, stubFileStore{}, nil, zerolog.Nop())
	chat := service.NewChatService(appender, stubAssociator{}, zerolog.Nop())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxRole, role)
		c.Set(auth.CtxSubject, subject)
		c.Next()
	})
	New(svc, chat).Register(r.Group(""))
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProject_ReturnsCredentialsOnce(t *testing.T) {
	store := newStubProjectStore()
	r := sessionRouter(store, &stubAppender{}, "admin", "admin")

	w := doJSON(r, http.MethodPost, "/projects", `{"name":"Website","price":5000}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		OK       bool   `json:"ok"`
		ID       string `json:"id"`
		Password string `json:"password"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.Password)

	// The detail view must never echo the password or its hash.
	w = doJSON(r, http.MethodGet, "/project/"+resp.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), resp.Password)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestCreateProject_BadDeadline(t *testing.T) {
	r := sessionRouter(newStubProjectStore(), &stubAppender{}, "admin", "admin")

	w := doJSON(r, http.MethodPost, "/projects", `{"name":"Website","price":1,"deadline":"tomorrow"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProject_InvalidStatus(t *testing.T) {
	store := newStubProjectStore()
	store.byID["PRJ-AB12CD"] = &domain.Project{ID: "PRJ-AB12CD", Status: domain.StatusNew}
	r := sessionRouter(store, &stubAppender{}, "admin", "admin")

	w := doJSON(r, http.MethodPut, "/projects/PRJ-AB12CD", `{"status":"Paused"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProject_NotFound(t *testing.T) {
	r := sessionRouter(newStubProjectStore(), &stubAppender{}, "admin", "admin")

	w := doJSON(r, http.MethodPut, "/projects/PRJ-MISSING", `{"status":"Review"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientCannotMutateProjects(t *testing.T) {
	store := newStubProjectStore()
	store.byID["PRJ-AB12CD"] = &domain.Project{ID: "PRJ-AB12CD"}
	r := sessionRouter(store, &stubAppender{}, "client", "PRJ-AB12CD")

	for _, call := range []struct{ method, path, body string }{
		{http.MethodPost, "/projects", `{"name":"x","price":1}`},
		{http.MethodPut, "/projects/PRJ-AB12CD", `{"status":"Review"}`},
		{http.MethodDelete, "/projects/PRJ-AB12CD", ""},
	} {
		w := doJSON(r, call.method, call.path, call.body)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", call.method, call.path)
	}
}

func TestClientDetailScopedToOwnProject(t *testing.T) {
	store := newStubProjectStore()
	store.byID["PRJ-AB12CD"] = &domain.Project{ID: "PRJ-AB12CD"}
	store.byID["PRJ-FF00AA"] = &domain.Project{ID: "PRJ-FF00AA"}
	r := sessionRouter(store, &stubAppender{}, "client", "PRJ-AB12CD")

	w := doJSON(r, http.MethodGet, "/project/PRJ-AB12CD", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/project/PRJ-FF00AA", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSendMessage_SenderFromSession(t *testing.T) {
	store := newStubProjectStore()
	store.byID["PRJ-AB12CD"] = &domain.Project{ID: "PRJ-AB12CD"}
	appender := &stubAppender{}
	r := sessionRouter(store, appender, "client", "PRJ-AB12CD")

	// A sender field in the body is ignored; only the session role counts.
	w := doJSON(r, http.MethodPost, "/chat/PRJ-AB12CD", `{"body":"hello","sender":"admin"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "client", appender.lastSender)
}

func TestSendMessage_EmptyBody(t *testing.T) {
	store := newStubProjectStore()
	store.byID["PRJ-AB12CD"] = &domain.Project{ID: "PRJ-AB12CD"}
	r := sessionRouter(store, &stubAppender{}, "admin", "admin")

	w := doJSON(r, http.MethodPost, "/chat/PRJ-AB12CD", `{"body":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProject(t *testing.T) {
	store := newStubProjectStore()
	store.byID["PRJ-AB12CD"] = &domain.Project{ID: "PRJ-AB12CD"}
	r := sessionRouter(store, &stubAppender{}, "admin", "admin")

	w := doJSON(r, http.MethodDelete, "/projects/PRJ-AB12CD", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/projects/PRJ-AB12CD", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
