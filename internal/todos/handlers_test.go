package todos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	nextID   int64
	byID     map[int64]*Todo
	lastDone *bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[int64]*Todo)}
}

func (f *fakeStore) Create(_ context.Context, task, priority string) (*Todo, error) {
	f.nextID++
	t := &Todo{ID: f.nextID, Task: task, Priority: priority}
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeStore) SetDone(_ context.Context, id int64, done bool) (*Todo, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.Done = done
	f.lastDone = &done
	return t, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func newTestRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(store).Register(r.Group(""))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTodo(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	w := do(r, http.MethodPost, "/todos", `{"task":"send invoice","priority":"high"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"send invoice"`)
	require.Len(t, store.byID, 1)
	assert.Equal(t, PriorityHigh, store.byID[1].Priority)
}

func TestCreateTodo_DefaultPriority(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	w := do(r, http.MethodPost, "/todos", `{"task":"call client"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, PriorityLow, store.byID[1].Priority)
}

func TestCreateTodo_BadPriority(t *testing.T) {
	r := newTestRouter(newFakeStore())

	w := do(r, http.MethodPost, "/todos", `{"task":"x","priority":"urgent"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTodo_EmptyTask(t *testing.T) {
	r := newTestRouter(newFakeStore())

	w := do(r, http.MethodPost, "/todos", `{"task":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetDone(t *testing.T) {
	store := newFakeStore()
	store.byID[5] = &Todo{ID: 5, Task: "ship it"}
	r := newTestRouter(store)

	w := do(r, http.MethodPatch, "/todos/5", `{"done":true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.byID[5].Done)

	w = do(r, http.MethodPatch, "/todos/5", `{"done":false}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, store.byID[5].Done)
}

func TestSetDone_NotFound(t *testing.T) {
	r := newTestRouter(newFakeStore())

	w := do(r, http.MethodPatch, "/todos/99", `{"done":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetDone_BadID(t *testing.T) {
	r := newTestRouter(newFakeStore())

	w := do(r, http.MethodPatch, "/todos/abc", `{"done":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTodo(t *testing.T) {
	store := newFakeStore()
	store.byID[2] = &Todo{ID: 2, Task: "old"}
	r := newTestRouter(store)

	w := do(r, http.MethodDelete, "/todos/2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.byID)

	w = do(r, http.MethodDelete, "/todos/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
