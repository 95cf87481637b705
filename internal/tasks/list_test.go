// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package tasks_test

import (
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/tasks"
)

func TestNewTaskList(t *testing.T) {
	ownerID := ulid.Make()

	t.Run("valid list", func(t *testing.T) {
		list, err := tasks.NewTaskList(ownerID, "  Groceries  ", " weekly shopping ")
		require.NoError(t, err)

		assert.Equal(t, "Groceries", list.Name, "name should be trimmed")
		assert.Equal(t, "weekly shopping", list.Description)
		assert.Equal(t, ownerID, list.OwnerID)
		assert.NotEqual(t, ulid.ULID{}, list.ID)
		assert.Equal(t, list.CreatedAt, list.UpdatedAt)
	})

	t.Run("empty description is allowed", func(t *testing.T) {
		list, err := tasks.NewTaskList(ownerID, "Groceries", "")
		require.NoError(t, err)
		assert.Empty(t, list.Description)
	})

	t.Run("zero owner", func(t *testing.T) {
		_, err := tasks.NewTaskList(ulid.ULID{}, "Groceries", "")
		require.Error(t, err)

		var verr *tasks.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "ownerId", verr.Field)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := tasks.NewTaskList(ownerID, "   ", "")
		require.Error(t, err)

		var verr *tasks.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "name", verr.Field)
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := tasks.NewTaskList(ownerID, strings.Repeat("x", tasks.MaxListNameLength+1), "")
		require.Error(t, err)
	})

	t.Run("description too long", func(t *testing.T) {
		_, err := tasks.NewTaskList(ownerID, "Groceries", strings.Repeat("x", tasks.MaxListDescriptionLength+1))
		require.Error(t, err)

		var verr *tasks.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "description", verr.Field)
	})
}
