// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/tasknest/tasknest/internal/tasks"
)

// TaskRepository implements tasks.TaskRepository using PostgreSQL.
type TaskRepository struct {
	db Querier
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db Querier) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskViewColumns = `t.id, t.title, t.description, t.status, t.due_date, t.owner_id, t.list_id, t.created_at, t.updated_at, l.name`

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, task *tasks.Task) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tasks (id, title, description, status, due_date, owner_id, list_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		task.ID.String(),
		task.Title,
		task.Description,
		string(task.Status),
		task.DueDate,
		task.OwnerID.String(),
		task.ListID.String(),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return oops.Code("TASK_CREATE_FAILED").
			With("operation", "insert task").
			Wrap(err)
	}
	return nil
}

// ListByOwner returns the owner's tasks matching the filters, newest first.
// Set filters are ANDed together; the due-date range is inclusive.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID ulid.ULID, filters tasks.TaskFilters) ([]*tasks.TaskView, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + taskViewColumns + `
		FROM tasks t
		JOIN task_lists l ON l.id = t.list_id
		WHERE t.owner_id = $1`)
	args := []any{ownerID.String()}

	if filters.ListID != nil {
		args = append(args, filters.ListID.String())
		fmt.Fprintf(&sb, " AND t.list_id = $%d", len(args))
	}
	if filters.Status != nil {
		args = append(args, string(*filters.Status))
		fmt.Fprintf(&sb, " AND t.status = $%d", len(args))
	}
	if filters.DueDateFrom != nil {
		args = append(args, *filters.DueDateFrom)
		fmt.Fprintf(&sb, " AND t.due_date >= $%d", len(args))
	}
	if filters.DueDateTo != nil {
		args = append(args, *filters.DueDateTo)
		fmt.Fprintf(&sb, " AND t.due_date <= $%d", len(args))
	}
	sb.WriteString(" ORDER BY t.created_at DESC")

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, oops.Code("TASK_QUERY_FAILED").
			With("operation", "list tasks by owner").
			Wrap(err)
	}
	defer rows.Close()

	var views []*tasks.TaskView
	for rows.Next() {
		view, err := scanTaskView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("TASK_QUERY_FAILED").
			With("operation", "iterate tasks").
			Wrap(err)
	}
	return views, nil
}

// GetByID retrieves a task scoped by owner. Cross-owner access is
// indistinguishable from not-found.
func (r *TaskRepository) GetByID(ctx context.Context, id, ownerID ulid.ULID) (*tasks.TaskView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+taskViewColumns+`
		FROM tasks t
		JOIN task_lists l ON l.id = t.list_id
		WHERE t.id = $1 AND t.owner_id = $2
	`, id.String(), ownerID.String())

	view, err := scanTaskView(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("TASK_NOT_FOUND").
			With("id", id.String()).
			Wrap(tasks.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("TASK_GET_FAILED").
			With("operation", "get task by id").
			With("id", id.String()).
			Wrap(err)
	}
	return view, nil
}

// Update persists changes to a task, scoped by ID and owner.
func (r *TaskRepository) Update(ctx context.Context, task *tasks.Task) error {
	result, err := r.db.Exec(ctx, `
		UPDATE tasks SET title = $3, description = $4, status = $5, due_date = $6, list_id = $7, updated_at = $8
		WHERE id = $1 AND owner_id = $2
	`,
		task.ID.String(),
		task.OwnerID.String(),
		task.Title,
		task.Description,
		string(task.Status),
		task.DueDate,
		task.ListID.String(),
		time.Now(),
	)
	if err != nil {
		return oops.Code("TASK_UPDATE_FAILED").
			With("operation", "update task").
			With("id", task.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("TASK_NOT_FOUND").
			With("id", task.ID.String()).
			Wrap(tasks.ErrNotFound)
	}
	return nil
}

// Delete removes a task, scoped by ID and owner.
func (r *TaskRepository) Delete(ctx context.Context, id, ownerID ulid.ULID) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM tasks WHERE id = $1 AND owner_id = $2
	`, id.String(), ownerID.String())
	if err != nil {
		return oops.Code("TASK_DELETE_FAILED").
			With("operation", "delete task").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("TASK_NOT_FOUND").
			With("id", id.String()).
			Wrap(tasks.ErrNotFound)
	}
	return nil
}

// ListByList returns the owner's tasks in one list, newest first.
func (r *TaskRepository) ListByList(ctx context.Context, listID, ownerID ulid.ULID) ([]*tasks.Task, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, status, due_date, owner_id, list_id, created_at, updated_at
		FROM tasks
		WHERE list_id = $1 AND owner_id = $2
		ORDER BY created_at DESC
	`, listID.String(), ownerID.String())
	if err != nil {
		return nil, oops.Code("TASK_QUERY_FAILED").
			With("operation", "list tasks by list").
			With("list_id", listID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var items []*tasks.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, task)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("TASK_QUERY_FAILED").
			With("operation", "iterate tasks").
			Wrap(err)
	}
	return items, nil
}

// scanTask scans a single row into a Task.
// Callers are responsible for handling pgx.ErrNoRows.
func scanTask(row pgx.Row) (*tasks.Task, error) {
	var (
		idStr       string
		title       string
		description string
		status      string
		dueDate     *time.Time
		ownerIDStr  string
		listIDStr   string
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(&idStr, &title, &description, &status, &dueDate, &ownerIDStr, &listIDStr, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // callers wrap with context-specific info
		}
		return nil, oops.Code("TASK_SCAN_FAILED").
			With("operation", "scan task").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("TASK_INVALID_ID").
			With("id", idStr).
			Wrap(err)
	}
	ownerID, err := ulid.Parse(ownerIDStr)
	if err != nil {
		return nil, oops.Code("TASK_INVALID_OWNER_ID").
			With("owner_id", ownerIDStr).
			Wrap(err)
	}
	listID, err := ulid.Parse(listIDStr)
	if err != nil {
		return nil, oops.Code("TASK_INVALID_LIST_ID").
			With("list_id", listIDStr).
			Wrap(err)
	}

	return &tasks.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      tasks.Status(status),
		DueDate:     dueDate,
		OwnerID:     ownerID,
		ListID:      listID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// scanTaskView scans a task row joined with its list name.
func scanTaskView(row pgx.Row) (*tasks.TaskView, error) {
	var (
		idStr       string
		title       string
		description string
		status      string
		dueDate     *time.Time
		ownerIDStr  string
		listIDStr   string
		createdAt   time.Time
		updatedAt   time.Time
		listName    string
	)

	err := row.Scan(&idStr, &title, &description, &status, &dueDate, &ownerIDStr, &listIDStr, &createdAt, &updatedAt, &listName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // callers wrap with context-specific info
		}
		return nil, oops.Code("TASK_SCAN_FAILED").
			With("operation", "scan task view").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("TASK_INVALID_ID").
			With("id", idStr).
			Wrap(err)
	}
	ownerID, err := ulid.Parse(ownerIDStr)
	if err != nil {
		return nil, oops.Code("TASK_INVALID_OWNER_ID").
			With("owner_id", ownerIDStr).
			Wrap(err)
	}
	listID, err := ulid.Parse(listIDStr)
	if err != nil {
		return nil, oops.Code("TASK_INVALID_LIST_ID").
			With("list_id", listIDStr).
			Wrap(err)
	}

	return &tasks.TaskView{
		Task: tasks.Task{
			ID:          id,
			Title:       title,
			Description: description,
			Status:      tasks.Status(status),
			DueDate:     dueDate,
			OwnerID:     ownerID,
			ListID:      listID,
			CreatedAt:   createdAt,
			UpdatedAt:   updatedAt,
		},
		ListName: listName,
	}, nil
}

// Compile-time interface check.
var _ tasks.TaskRepository = (*TaskRepository)(nil)
