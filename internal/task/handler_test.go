package task

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mongarerobert3/todo-list-api/internal/auth"
	"github.com/mongarerobert3/todo-list-api/internal/logging"
)

// newTestRouter wires the handler behind chi with the given identity already
// authenticated, the way the auth middleware would leave the context.
func newTestRouter(repo TaskRepository, subject uuid.UUID) *chi.Mux {
	logger := logging.NewLogger(true)
	handler := NewHandler(newTestTaskService(repo, nil), logger)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), auth.UserIDContextKey, subject)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Post("/api/tasks", handler.Create)
	r.Get("/api/tasks", handler.List)
	r.Put("/api/tasks/{id}", handler.Update)
	r.Delete("/api/tasks/{id}", handler.Delete)
	return r
}

func TestCreateTaskEndpoint(t *testing.T) {
	owner := uuid.New()
	repo := &taskRepoMock{
		createFunc: func(_ context.Context, task *Task) (*Task, error) {
			created := *task
			created.ID = uuid.New()
			return &created, nil
		},
	}
	router := newTestRouter(repo, owner)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"text":"buy milk","ownerId":"`+uuid.NewString()+`"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	// Client-supplied owner id is ignored in favor of the authenticated one
	assert.Equal(t, owner, created.OwnerID)
	assert.Equal(t, "buy milk", created.Text)
}

func TestCreateTaskEndpointMissingText(t *testing.T) {
	repo := &taskRepoMock{
		createFunc: func(context.Context, *Task) (*Task, error) {
			t.Fatal("store should not be reached")
			return nil, nil
		},
	}
	router := newTestRouter(repo, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTasksEndpoint(t *testing.T) {
	owner := uuid.New()
	repo := &taskRepoMock{
		findAllByOwnerFunc: func(_ context.Context, ownerID uuid.UUID) ([]Task, error) {
			assert.Equal(t, owner, ownerID)
			return []Task{{ID: uuid.New(), OwnerID: owner, Text: "mine"}}, nil
		},
	}
	router := newTestRouter(repo, owner)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Text)
}

func TestUpdateTaskEndpointForbidden(t *testing.T) {
	owner := uuid.New()
	taskID := uuid.New()
	repo := &taskRepoMock{
		findByIDFunc: func(context.Context, uuid.UUID) (*Task, error) {
			return &Task{ID: taskID, OwnerID: owner, Text: "private"}, nil
		},
	}
	router := newTestRouter(repo, uuid.New()) // authenticated as someone else

	req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+taskID.String(), strings.NewReader(`{"completed":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateTaskEndpointNotFound(t *testing.T) {
	repo := &taskRepoMock{
		findByIDFunc: func(context.Context, uuid.UUID) (*Task, error) {
			return nil, ErrNotFound
		},
	}
	router := newTestRouter(repo, uuid.New())

	req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+uuid.NewString(), strings.NewReader(`{"completed":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTaskEndpointMalformedID(t *testing.T) {
	repo := &taskRepoMock{
		findByIDFunc: func(context.Context, uuid.UUID) (*Task, error) {
			t.Fatal("store should not be reached for a malformed id")
			return nil, nil
		},
	}
	router := newTestRouter(repo, uuid.New())

	req := httptest.NewRequest(http.MethodPut, "/api/tasks/not-a-uuid", strings.NewReader(`{"completed":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTaskEndpointSoftDelete(t *testing.T) {
	owner := uuid.New()
	taskID := uuid.New()
	repo := &taskRepoMock{
		findByIDFunc: func(context.Context, uuid.UUID) (*Task, error) {
			return &Task{ID: taskID, OwnerID: owner, Text: "done with this"}, nil
		},
		updateByIDFunc: func(_ context.Context, id uuid.UUID, patch Patch) (*Task, error) {
			require.NotNil(t, patch.Deleted)
			assert.True(t, *patch.Deleted)
			return &Task{ID: taskID, OwnerID: owner, Text: "done with this", Deleted: true}, nil
		},
	}
	router := newTestRouter(repo, owner)

	req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+taskID.String(), strings.NewReader(`{"deleted":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.Deleted)
}

func TestDeleteTaskEndpoint(t *testing.T) {
	owner := uuid.New()
	taskID := uuid.New()
	repo := &taskRepoMock{
		findByIDFunc: func(context.Context, uuid.UUID) (*Task, error) {
			return &Task{ID: taskID, OwnerID: owner}, nil
		},
		deleteByIDFunc: func(context.Context, uuid.UUID) error {
			return nil
		},
	}
	router := newTestRouter(repo, owner)

	req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+taskID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestDeleteTaskEndpointNotFound(t *testing.T) {
	repo := &taskRepoMock{
		findByIDFunc: func(context.Context, uuid.UUID) (*Task, error) {
			return nil, ErrNotFound
		},
	}
	router := newTestRouter(repo, uuid.New())

	req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
