package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/mongarerobert3/todo-list-api/internal/database"
)

var ErrNotFound = errors.New("task not found")

// Repository handles task persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new task
func (r *Repository) Create(ctx context.Context, t *Task) (*Task, error) {
	dbTask := &database.Task{
		OwnerID:   t.OwnerID,
		Text:      t.Text,
		Completed: t.Completed,
		Deleted:   t.Deleted,
	}

	_, err := r.db.NewInsert().
		Model(dbTask).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return mapDBTaskToModel(dbTask), nil
}

// FindAllByOwner retrieves all tasks owned by the given user,
// excluding soft-deleted ones, newest first
func (r *Repository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error) {
	var dbTasks []database.Task
	err := r.db.NewSelect().
		Model(&dbTasks).
		Where("owner_id = ?", ownerID).
		Where("deleted = ?", false).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]Task, 0, len(dbTasks))
	for i := range dbTasks {
		tasks = append(tasks, *mapDBTaskToModel(&dbTasks[i]))
	}

	return tasks, nil
}

// FindByID retrieves a task by id
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	dbTask := new(database.Task)
	err := r.db.NewSelect().
		Model(dbTask).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return mapDBTaskToModel(dbTask), nil
}

// UpdateByID applies the non-nil patch fields to a task and returns the
// updated row
func (r *Repository) UpdateByID(ctx context.Context, id uuid.UUID, patch Patch) (*Task, error) {
	dbTask := new(database.Task)
	q := r.db.NewUpdate().
		Model(dbTask).
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Returning("*")

	if patch.Text != nil {
		q = q.Set("text = ?", *patch.Text)
	}
	if patch.Completed != nil {
		q = q.Set("completed = ?", *patch.Completed)
	}
	if patch.Deleted != nil {
		q = q.Set("deleted = ?", *patch.Deleted)
	}

	result, err := q.Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return mapDBTaskToModel(dbTask), nil
}

// DeleteByID removes a task permanently
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.Task)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// mapDBTaskToModel converts database model to domain model
func mapDBTaskToModel(dbt *database.Task) *Task {
	return &Task{
		ID:        dbt.ID,
		OwnerID:   dbt.OwnerID,
		Text:      dbt.Text,
		Completed: dbt.Completed,
		Deleted:   dbt.Deleted,
		CreatedAt: dbt.CreatedAt,
		UpdatedAt: dbt.UpdatedAt,
	}
}
