package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mongarerobert3/todo-list-api/internal/logging"
)

var (
	ErrTextRequired = errors.New("text is required")
	ErrForbidden    = errors.New("task belongs to another user")
)

// TaskRepository defines the task store operations the service needs
type TaskRepository interface {
	Create(ctx context.Context, t *Task) (*Task, error)
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	UpdateByID(ctx context.Context, id uuid.UUID, patch Patch) (*Task, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// ListCache caches owner task lists. A nil cache disables caching.
type ListCache interface {
	Get(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	Set(ctx context.Context, ownerID uuid.UUID, tasks []Task) error
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

// Service enforces ownership on task operations. Every read, update and
// delete is scoped to the authenticated owner; the owner id always comes
// from the request context, never from the client payload.
type Service struct {
	repo   TaskRepository
	cache  ListCache
	logger *logging.Logger
}

func NewService(repo TaskRepository, cache ListCache, logger *logging.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Create persists a new task for the authenticated owner
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, text string, completed bool) (*Task, error) {
	if text == "" {
		return nil, ErrTextRequired
	}

	created, err := s.repo.Create(ctx, &Task{
		OwnerID:   ownerID,
		Text:      text,
		Completed: completed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.invalidateCache(ctx, ownerID)

	return created, nil
}

// List returns all tasks owned by the given user, cache-first
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Task, error) {
	if s.cache != nil {
		tasks, err := s.cache.Get(ctx, ownerID)
		if err == nil {
			return tasks, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			// Cache trouble degrades to the store
			s.logger.Warn("task list cache read failed", "owner_id", ownerID, "error", err.Error())
		}
	}

	tasks, err := s.repo.FindAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerID, tasks); err != nil {
			s.logger.Warn("task list cache write failed", "owner_id", ownerID, "error", err.Error())
		}
	}

	return tasks, nil
}

// Update applies a partial update to a task. The task must exist and be
// owned by the caller; the ownership check happens before any mutation.
func (s *Service) Update(ctx context.Context, ownerID, taskID uuid.UUID, patch Patch) (*Task, error) {
	existing, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if existing.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	updated, err := s.repo.UpdateByID(ctx, taskID, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.invalidateCache(ctx, ownerID)

	return updated, nil
}

// Delete removes a task permanently. Same ownership rule as Update.
func (s *Service) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	existing, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}

	if existing.OwnerID != ownerID {
		return ErrForbidden
	}

	if err := s.repo.DeleteByID(ctx, taskID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.invalidateCache(ctx, ownerID)

	return nil
}

func (s *Service) invalidateCache(ctx context.Context, ownerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.logger.Warn("task list cache invalidation failed", "owner_id", ownerID, "error", err.Error())
	}
}
