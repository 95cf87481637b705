// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

// Package postgres implements task repositories on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/tasknest/tasknest/internal/tasks"
)

// Querier is the subset of pgxpool.Pool the repositories use. It is
// satisfied by *pgxpool.Pool in production and by pgxmock pools in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TaskListRepository implements tasks.TaskListRepository using PostgreSQL.
type TaskListRepository struct {
	db Querier
}

// NewTaskListRepository creates a new TaskListRepository.
func NewTaskListRepository(db Querier) *TaskListRepository {
	return &TaskListRepository{db: db}
}

// Create persists a new task list.
func (r *TaskListRepository) Create(ctx context.Context, list *tasks.TaskList) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO task_lists (id, name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		list.ID.String(),
		list.Name,
		list.Description,
		list.OwnerID.String(),
		list.CreatedAt,
		list.UpdatedAt,
	)
	if err != nil {
		return oops.Code("LIST_CREATE_FAILED").
			With("operation", "insert task list").
			Wrap(err)
	}
	return nil
}

// ListByOwner returns all lists owned by ownerID, newest first.
func (r *TaskListRepository) ListByOwner(ctx context.Context, ownerID ulid.ULID) ([]*tasks.TaskList, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM task_lists
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID.String())
	if err != nil {
		return nil, oops.Code("LIST_QUERY_FAILED").
			With("operation", "list task lists by owner").
			Wrap(err)
	}
	defer rows.Close()

	var lists []*tasks.TaskList
	for rows.Next() {
		list, err := scanTaskList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("LIST_QUERY_FAILED").
			With("operation", "iterate task lists").
			Wrap(err)
	}
	return lists, nil
}

// GetByID retrieves a list scoped by owner. Cross-owner access is
// indistinguishable from not-found.
func (r *TaskListRepository) GetByID(ctx context.Context, id, ownerID ulid.ULID) (*tasks.TaskList, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM task_lists
		WHERE id = $1 AND owner_id = $2
	`, id.String(), ownerID.String())

	list, err := scanTaskList(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("LIST_NOT_FOUND").
			With("id", id.String()).
			Wrap(tasks.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("LIST_GET_FAILED").
			With("operation", "get task list by id").
			With("id", id.String()).
			Wrap(err)
	}
	return list, nil
}

// Update persists changes to a list, scoped by ID and owner.
func (r *TaskListRepository) Update(ctx context.Context, list *tasks.TaskList) error {
	result, err := r.db.Exec(ctx, `
		UPDATE task_lists SET name = $3, description = $4, updated_at = $5
		WHERE id = $1 AND owner_id = $2
	`,
		list.ID.String(),
		list.OwnerID.String(),
		list.Name,
		list.Description,
		time.Now(),
	)
	if err != nil {
		return oops.Code("LIST_UPDATE_FAILED").
			With("operation", "update task list").
			With("id", list.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("LIST_NOT_FOUND").
			With("id", list.ID.String()).
			Wrap(tasks.ErrNotFound)
	}
	return nil
}

// Delete removes a list unless any task still references it. The
// reference check and the delete run in one transaction so a concurrent
// task insert cannot slip between them. The check deliberately ignores
// the task's owner.
func (r *TaskListRepository) Delete(ctx context.Context, id, ownerID ulid.ULID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return oops.Code("LIST_DELETE_FAILED").
			With("operation", "begin transaction").
			Wrap(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM task_lists WHERE id = $1 AND owner_id = $2 FOR UPDATE)
	`, id.String(), ownerID.String()).Scan(&exists)
	if err != nil {
		return oops.Code("LIST_DELETE_FAILED").
			With("operation", "lock task list").
			With("id", id.String()).
			Wrap(err)
	}
	if !exists {
		return oops.Code("LIST_NOT_FOUND").
			With("id", id.String()).
			Wrap(tasks.ErrNotFound)
	}

	var hasTasks bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM tasks WHERE list_id = $1)
	`, id.String()).Scan(&hasTasks)
	if err != nil {
		return oops.Code("LIST_DELETE_FAILED").
			With("operation", "count referencing tasks").
			With("id", id.String()).
			Wrap(err)
	}
	if hasTasks {
		return oops.Code("LIST_HAS_TASKS").
			With("id", id.String()).
			Wrap(tasks.ErrListHasTasks)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM task_lists WHERE id = $1 AND owner_id = $2
	`, id.String(), ownerID.String()); err != nil {
		return oops.Code("LIST_DELETE_FAILED").
			With("operation", "delete task list").
			With("id", id.String()).
			Wrap(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return oops.Code("LIST_DELETE_FAILED").
			With("operation", "commit transaction").
			With("id", id.String()).
			Wrap(err)
	}
	return nil
}

// scanTaskList scans a single row into a TaskList.
// Callers are responsible for handling pgx.ErrNoRows.
func scanTaskList(row pgx.Row) (*tasks.TaskList, error) {
	var (
		idStr       string
		name        string
		description string
		ownerIDStr  string
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(&idStr, &name, &description, &ownerIDStr, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // callers wrap with context-specific info
		}
		return nil, oops.Code("LIST_SCAN_FAILED").
			With("operation", "scan task list").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("LIST_INVALID_ID").
			With("id", idStr).
			Wrap(err)
	}
	ownerID, err := ulid.Parse(ownerIDStr)
	if err != nil {
		return nil, oops.Code("LIST_INVALID_OWNER_ID").
			With("owner_id", ownerIDStr).
			Wrap(err)
	}

	return &tasks.TaskList{
		ID:          id,
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Compile-time interface check.
var _ tasks.TaskListRepository = (*TaskListRepository)(nil)
