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

// Task list field bounds.
const (
	MaxListNameLength        = 100
	MaxListDescriptionLength = 500
)

// TaskList groups tasks under a single owner.
type TaskList struct {
	ID          ulid.ULID
	Name        string
	Description string
	OwnerID     ulid.ULID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateListName checks task list name bounds.
func ValidateListName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if len(name) > MaxListNameLength {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("exceeds maximum length of %d", MaxListNameLength)}
	}
	return nil
}

// ValidateListDescription checks task list description bounds.
// Descriptions may be empty.
func ValidateListDescription(desc string) error {
	if len(desc) > MaxListDescriptionLength {
		return &ValidationError{Field: "description", Message: fmt.Sprintf("exceeds maximum length of %d", MaxListDescriptionLength)}
	}
	return nil
}

// NewTaskList creates a validated TaskList owned by ownerID.
func NewTaskList(ownerID ulid.ULID, name, description string) (*TaskList, error) {
	if ownerID.Compare(ulid.ULID{}) == 0 {
		return nil, &ValidationError{Field: "ownerId", Message: "cannot be zero"}
	}
	name = strings.TrimSpace(name)
	if err := ValidateListName(name); err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if err := ValidateListDescription(description); err != nil {
		return nil, err
	}

	now := time.Now()
	return &TaskList{
		ID:          ulid.Make(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ListPatch is a partial update to a task list. Nil fields are untouched.
type ListPatch struct {
	Name        *string
	Description *string
}

// TaskListRepository manages task list persistence. All lookups and
// mutations are scoped by owner ID.
type TaskListRepository interface {
	// Create persists a new task list.
	Create(ctx context.Context, list *TaskList) error

	// ListByOwner returns all lists owned by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID ulid.ULID) ([]*TaskList, error)

	// GetByID retrieves a list by ID for the given owner.
	// Returns ErrNotFound (wrapped) if absent or owned by someone else.
	GetByID(ctx context.Context, id, ownerID ulid.ULID) (*TaskList, error)

	// Update persists changes to a list, scoped by ID and owner.
	Update(ctx context.Context, list *TaskList) error

	// Delete removes a list. The "no tasks reference this list" check and
	// the delete run atomically; ErrListHasTasks (wrapped) is returned when
	// any task still references the list, regardless of the task's owner.
	Delete(ctx context.Context, id, ownerID ulid.ULID) error
}
