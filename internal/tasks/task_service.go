// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package tasks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// CreateTaskParams carries the fields for TaskService.Create.
type CreateTaskParams struct {
	Title       string
	Description string
	Status      Status
	DueDate     *time.Time
	ListID      ulid.ULID
}

// TaskService provides owner-scoped task operations.
type TaskService struct {
	tasks  TaskRepository
	lists  TaskListRepository
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks TaskRepository, lists TaskListRepository) (*TaskService, error) {
	return NewTaskServiceWithLogger(tasks, lists, slog.Default())
}

// NewTaskServiceWithLogger creates a new TaskService with an explicit logger.
func NewTaskServiceWithLogger(tasks TaskRepository, lists TaskListRepository, logger *slog.Logger) (*TaskService, error) {
	if tasks == nil {
		return nil, oops.Errorf("tasks repository is required")
	}
	if lists == nil {
		return nil, oops.Errorf("lists repository is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &TaskService{tasks: tasks, lists: lists, logger: logger}, nil
}

// Create persists a new task for ownerID. The target list must exist and
// be owned by the caller; absent and cross-owner both fail LIST_NOT_FOUND.
func (s *TaskService) Create(ctx context.Context, ownerID ulid.ULID, params CreateTaskParams) (*TaskView, error) {
	list, err := s.lists.GetByID(ctx, params.ListID, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("LIST_NOT_FOUND").
				With("list_id", params.ListID.String()).
				Wrap(err)
		}
		return nil, oops.Code("TASK_CREATE_FAILED").
			With("operation", "check list ownership").
			Wrap(err)
	}

	task, err := NewTask(ownerID, params.ListID, params.Title, params.Description, params.Status, params.DueDate)
	if err != nil {
		return nil, oops.Code("TASK_CREATE_FAILED").
			With("operation", "build task").
			Wrap(err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, oops.Code("TASK_CREATE_FAILED").
			With("operation", "persist task").
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "task created",
		"task_id", task.ID.String(),
		"list_id", params.ListID.String(),
		"owner_id", ownerID.String(),
	)
	return &TaskView{Task: *task, ListName: list.Name}, nil
}

// List returns the owner's tasks matching the filters, newest first.
func (s *TaskService) List(ctx context.Context, ownerID ulid.ULID, filters TaskFilters) ([]*TaskView, error) {
	views, err := s.tasks.ListByOwner(ctx, ownerID, filters)
	if err != nil {
		return nil, oops.Code("TASK_QUERY_FAILED").
			With("owner_id", ownerID.String()).
			Wrap(err)
	}
	return views, nil
}

// Get retrieves a single task. Absent and cross-owner both fail with
// TASK_NOT_FOUND.
func (s *TaskService) Get(ctx context.Context, id, ownerID ulid.ULID) (*TaskView, error) {
	view, err := s.tasks.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("TASK_NOT_FOUND").
				With("task_id", id.String()).
				Wrap(err)
		}
		return nil, oops.Code("TASK_GET_FAILED").
			With("task_id", id.String()).
			Wrap(err)
	}
	return view, nil
}

// Update applies a partial update to a task. A list change validates
// ownership of the new list only; the old list was valid at creation and
// is not re-checked. Supplied fields overwrite, absent fields are kept.
func (s *TaskService) Update(ctx context.Context, id, ownerID ulid.ULID, patch TaskPatch) (*TaskView, error) {
	view, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	task := view.Task

	if patch.ListID != nil && *patch.ListID != task.ListID {
		if _, err := s.lists.GetByID(ctx, *patch.ListID, ownerID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, oops.Code("NEW_LIST_NOT_FOUND").
					With("list_id", patch.ListID.String()).
					Wrap(err)
			}
			return nil, oops.Code("TASK_UPDATE_FAILED").
				With("operation", "check new list ownership").
				Wrap(err)
		}
		task.ListID = *patch.ListID
	}
	if patch.Title != nil {
		if err := ValidateTitle(*patch.Title); err != nil {
			return nil, oops.Code("TASK_UPDATE_FAILED").Wrap(err)
		}
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		if err := ValidateTaskDescription(*patch.Description); err != nil {
			return nil, oops.Code("TASK_UPDATE_FAILED").Wrap(err)
		}
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, oops.Code("TASK_UPDATE_FAILED").Errorf("unknown status %q", *patch.Status)
		}
		task.Status = *patch.Status
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	task.UpdatedAt = time.Now()

	if err := s.tasks.Update(ctx, &task); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("TASK_NOT_FOUND").
				With("task_id", id.String()).
				Wrap(err)
		}
		return nil, oops.Code("TASK_UPDATE_FAILED").
			With("task_id", id.String()).
			Wrap(err)
	}

	// Re-read so the view reflects the stored row and a possibly new list name.
	return s.Get(ctx, id, ownerID)
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id, ownerID ulid.ULID) error {
	err := s.tasks.Delete(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("TASK_NOT_FOUND").
				With("task_id", id.String()).
				Wrap(err)
		}
		return oops.Code("TASK_DELETE_FAILED").
			With("task_id", id.String()).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "task deleted",
		"task_id", id.String(),
		"owner_id", ownerID.String(),
	)
	return nil
}

// ListByList returns the owner's tasks in one list plus the list's display
// name. Fails LIST_NOT_FOUND when the list is absent or not the caller's.
func (s *TaskService) ListByList(ctx context.Context, listID, ownerID ulid.ULID) ([]*Task, string, error) {
	list, err := s.lists.GetByID(ctx, listID, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", oops.Code("LIST_NOT_FOUND").
				With("list_id", listID.String()).
				Wrap(err)
		}
		return nil, "", oops.Code("TASK_QUERY_FAILED").
			With("operation", "check list ownership").
			Wrap(err)
	}

	items, err := s.tasks.ListByList(ctx, listID, ownerID)
	if err != nil {
		return nil, "", oops.Code("TASK_QUERY_FAILED").
			With("list_id", listID.String()).
			Wrap(err)
	}
	return items, list.Name, nil
}
