// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package tasks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// OwnerDirectory answers whether a user exists. It decouples the task
// domain from the auth package; auth.UserRepository satisfies it.
type OwnerDirectory interface {
	Exists(ctx context.Context, id ulid.ULID) (bool, error)
}

// ListService provides owner-scoped task list operations.
type ListService struct {
	lists  TaskListRepository
	owners OwnerDirectory
	logger *slog.Logger
}

// NewListService creates a new ListService.
func NewListService(lists TaskListRepository, owners OwnerDirectory) (*ListService, error) {
	return NewListServiceWithLogger(lists, owners, slog.Default())
}

// NewListServiceWithLogger creates a new ListService with an explicit logger.
func NewListServiceWithLogger(lists TaskListRepository, owners OwnerDirectory, logger *slog.Logger) (*ListService, error) {
	if lists == nil {
		return nil, oops.Errorf("lists repository is required")
	}
	if owners == nil {
		return nil, oops.Errorf("owner directory is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &ListService{lists: lists, owners: owners, logger: logger}, nil
}

// Create persists a new task list for ownerID. The owner-existence check
// runs explicitly before the write.
func (s *ListService) Create(ctx context.Context, ownerID ulid.ULID, name, description string) (*TaskList, error) {
	exists, err := s.owners.Exists(ctx, ownerID)
	if err != nil {
		return nil, oops.Code("LIST_CREATE_FAILED").
			With("operation", "check owner exists").
			Wrap(err)
	}
	if !exists {
		return nil, oops.Code("OWNER_NOT_FOUND").
			With("owner_id", ownerID.String()).
			Errorf("owner does not exist")
	}

	list, err := NewTaskList(ownerID, name, description)
	if err != nil {
		return nil, oops.Code("LIST_CREATE_FAILED").
			With("operation", "build task list").
			Wrap(err)
	}

	if err := s.lists.Create(ctx, list); err != nil {
		return nil, oops.Code("LIST_CREATE_FAILED").
			With("operation", "persist task list").
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "task list created",
		"list_id", list.ID.String(),
		"owner_id", ownerID.String(),
	)
	return list, nil
}

// List returns all lists owned by ownerID, newest first.
func (s *ListService) List(ctx context.Context, ownerID ulid.ULID) ([]*TaskList, error) {
	lists, err := s.lists.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, oops.Code("LIST_QUERY_FAILED").
			With("owner_id", ownerID.String()).
			Wrap(err)
	}
	return lists, nil
}

// Get retrieves a single list. Absent and cross-owner both fail with
// LIST_NOT_FOUND.
func (s *ListService) Get(ctx context.Context, id, ownerID ulid.ULID) (*TaskList, error) {
	list, err := s.lists.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("LIST_NOT_FOUND").
				With("list_id", id.String()).
				Wrap(err)
		}
		return nil, oops.Code("LIST_GET_FAILED").
			With("list_id", id.String()).
			Wrap(err)
	}
	return list, nil
}

// Update applies a partial update to a list. The validation layer
// guarantees at least one field is supplied.
func (s *ListService) Update(ctx context.Context, id, ownerID ulid.ULID, patch ListPatch) (*TaskList, error) {
	list, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if err := ValidateListName(*patch.Name); err != nil {
			return nil, oops.Code("LIST_UPDATE_FAILED").Wrap(err)
		}
		list.Name = *patch.Name
	}
	if patch.Description != nil {
		if err := ValidateListDescription(*patch.Description); err != nil {
			return nil, oops.Code("LIST_UPDATE_FAILED").Wrap(err)
		}
		list.Description = *patch.Description
	}

	if err := s.lists.Update(ctx, list); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("LIST_NOT_FOUND").
				With("list_id", id.String()).
				Wrap(err)
		}
		return nil, oops.Code("LIST_UPDATE_FAILED").
			With("list_id", id.String()).
			Wrap(err)
	}
	return list, nil
}

// Delete removes a list. Deletion is blocked while any task references the
// list; the repository performs the check and delete atomically.
func (s *ListService) Delete(ctx context.Context, id, ownerID ulid.ULID) error {
	err := s.lists.Delete(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, ErrListHasTasks) {
			return oops.Code("LIST_HAS_TASKS").
				With("list_id", id.String()).
				Wrap(err)
		}
		if errors.Is(err, ErrNotFound) {
			return oops.Code("LIST_NOT_FOUND").
				With("list_id", id.String()).
				Wrap(err)
		}
		return oops.Code("LIST_DELETE_FAILED").
			With("list_id", id.String()).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "task list deleted",
		"list_id", id.String(),
		"owner_id", ownerID.String(),
	)
	return nil
}
