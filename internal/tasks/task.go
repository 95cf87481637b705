// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Task field bounds.
const (
	MaxTitleLength           = 200
	MaxTaskDescriptionLength = 1000
)

// Status is a task's workflow state. Transitions are free; status is not a
// workflow guard in this system.
type Status string

// Task statuses.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", s)}
	}
	return status, nil
}

// Task is a single unit of work, owned by a user and attached to one of
// the owner's task lists.
type Task struct {
	ID          ulid.ULID
	Title       string
	Description string
	Status      Status
	DueDate     *time.Time
	OwnerID     ulid.ULID
	ListID      ulid.ULID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskView is a Task with its list reference resolved to a display name.
type TaskView struct {
	Task
	ListName string
}

// ValidateTitle checks task title bounds.
func ValidateTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	if len(title) > MaxTitleLength {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("exceeds maximum length of %d", MaxTitleLength)}
	}
	return nil
}

// ValidateTaskDescription checks task description bounds.
func ValidateTaskDescription(desc string) error {
	if len(desc) > MaxTaskDescriptionLength {
		return &ValidationError{Field: "description", Message: fmt.Sprintf("exceeds maximum length of %d", MaxTaskDescriptionLength)}
	}
	return nil
}

// NewTask creates a validated Task. The status defaults to pending when
// empty. A due date, if present, must be strictly in the future; the
// validation layer checks this upstream, but the constructor is the final
// authority at write time.
func NewTask(ownerID, listID ulid.ULID, title, description string, status Status, dueDate *time.Time) (*Task, error) {
	if ownerID.Compare(ulid.ULID{}) == 0 {
		return nil, &ValidationError{Field: "ownerId", Message: "cannot be zero"}
	}
	if listID.Compare(ulid.ULID{}) == 0 {
		return nil, &ValidationError{Field: "listId", Message: "cannot be zero"}
	}
	title = strings.TrimSpace(title)
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if err := ValidateTaskDescription(description); err != nil {
		return nil, err
	}
	if status == "" {
		status = StatusPending
	}
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}
	if dueDate != nil && !dueDate.After(time.Now()) {
		return nil, &ValidationError{Field: "dueDate", Message: "must be in the future"}
	}

	now := time.Now()
	return &Task{
		ID:          ulid.Make(),
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     dueDate,
		OwnerID:     ownerID,
		ListID:      listID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// TaskPatch is a partial update to a task. Nil fields are untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *Status
	DueDate     *time.Time
	ListID      *ulid.ULID
}

// TaskFilters narrow a task listing. All set fields are ANDed together;
// the date range is inclusive on both ends.
type TaskFilters struct {
	ListID      *ulid.ULID
	Status      *Status
	DueDateFrom *time.Time
	DueDateTo   *time.Time
}

// TaskRepository manages task persistence. All lookups and mutations are
// scoped by owner ID.
type TaskRepository interface {
	// Create persists a new task.
	Create(ctx context.Context, task *Task) error

	// ListByOwner returns the owner's tasks matching the filters, newest
	// first, each with its list name resolved.
	ListByOwner(ctx context.Context, ownerID ulid.ULID, filters TaskFilters) ([]*TaskView, error)

	// GetByID retrieves a task by ID for the given owner.
	// Returns ErrNotFound (wrapped) if absent or owned by someone else.
	GetByID(ctx context.Context, id, ownerID ulid.ULID) (*TaskView, error)

	// Update persists changes to a task, scoped by ID and owner.
	Update(ctx context.Context, task *Task) error

	// Delete removes a task, scoped by ID and owner.
	Delete(ctx context.Context, id, ownerID ulid.ULID) error

	// ListByList returns the owner's tasks in a list, newest first.
	ListByList(ctx context.Context, listID, ownerID ulid.ULID) ([]*Task, error)
}
