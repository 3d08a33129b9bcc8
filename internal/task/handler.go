package task

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mongarerobert3/todo-list-api/internal/auth"
	"github.com/mongarerobert3/todo-list-api/internal/httputil"
	"github.com/mongarerobert3/todo-list-api/internal/logging"
)

// Handler contains HTTP handlers for task endpoints
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CreateRequest represents the task creation request body.
// Any client-supplied owner id is ignored.
type CreateRequest struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// UpdateRequest represents a partial task update; omitted fields are left
// unchanged
type UpdateRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
	Deleted   *bool   `json:"deleted"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Create handles task creation
// @Summary      Create a task
// @Description  Create a new task owned by the authenticated user
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRequest true "Task content"
// @Success      201 {object} Task
// @Failure      400 {object} ErrorResponse "Invalid request or missing text"
// @Failure      401 {object} ErrorResponse "Missing or expired token"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/tasks [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	ownerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "Authorization token missing or bad token.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid create task request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), ownerID, req.Text, req.Completed)
	if err != nil {
		if errors.Is(err, ErrTextRequired) {
			logger.Warn("create task failed: validation error", "error", err.Error())
			respondError(w, err.Error(), httputil.CodeTextRequired, http.StatusBadRequest)
			return
		}
		logger.Error("create task failed: internal error", "error", err.Error())
		respondError(w, "failed to create task", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("task created", "task_id", created.ID)

	respondJSON(w, created, http.StatusCreated)
}

// List handles task listing
// @Summary      List tasks
// @Description  List all tasks owned by the authenticated user
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Task
// @Failure      401 {object} ErrorResponse "Missing or expired token"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/tasks [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	ownerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "Authorization token missing or bad token.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	tasks, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		logger.Error("list tasks failed: internal error", "error", err.Error())
		respondError(w, "failed to list tasks", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	respondJSON(w, tasks, http.StatusOK)
}

// Update handles partial task updates
// @Summary      Update a task
// @Description  Update fields of a task owned by the authenticated user
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Param        request body UpdateRequest true "Fields to update"
// @Success      200 {object} Task
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      401 {object} ErrorResponse "Missing or expired token"
// @Failure      403 {object} ErrorResponse "Task owned by another user"
// @Failure      404 {object} ErrorResponse "Task not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/tasks/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	ownerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "Authorization token missing or bad token.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	// Any id that cannot name an existing task reads as not found
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "Task not found", httputil.CodeTaskNotFound, http.StatusNotFound)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid update task request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), ownerID, taskID, Patch{
		Text:      req.Text,
		Completed: req.Completed,
		Deleted:   req.Deleted,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondError(w, "Task not found", httputil.CodeTaskNotFound, http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrForbidden) {
			logger.Warn("update task denied: not owner", "task_id", taskID)
			respondError(w, "you do not have access to this task", httputil.CodeForbidden, http.StatusForbidden)
			return
		}
		logger.Error("update task failed: internal error", "error", err.Error())
		respondError(w, "failed to update task", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("task updated", "task_id", taskID)

	respondJSON(w, updated, http.StatusOK)
}

// Delete handles task deletion
// @Summary      Delete a task
// @Description  Permanently delete a task owned by the authenticated user
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Success      204 "No content"
// @Failure      401 {object} ErrorResponse "Missing or expired token"
// @Failure      403 {object} ErrorResponse "Task owned by another user"
// @Failure      404 {object} ErrorResponse "Task not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/tasks/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	ownerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "Authorization token missing or bad token.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "Task not found", httputil.CodeTaskNotFound, http.StatusNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, taskID); err != nil {
		if errors.Is(err, ErrNotFound) {
			respondError(w, "Task not found", httputil.CodeTaskNotFound, http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrForbidden) {
			logger.Warn("delete task denied: not owner", "task_id", taskID)
			respondError(w, "you do not have access to this task", httputil.CodeForbidden, http.StatusForbidden)
			return
		}
		logger.Error("delete task failed: internal error", "error", err.Error())
		respondError(w, "failed to delete task", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("task deleted", "task_id", taskID)

	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, data any, statusCode int) {
	httputil.RespondJSON(w, data, statusCode)
}

func respondError(w http.ResponseWriter, message string, code string, statusCode int) {
	httputil.RespondErrorWithCode(w, message, code, statusCode)
}
