// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/tasks"
)

func testView(ownerID ulid.ULID) *tasks.TaskView {
	now := time.Now().UTC().Truncate(time.Second)
	return &tasks.TaskView{
		Task: tasks.Task{
			ID:          ulid.Make(),
			Title:       "Buy milk",
			Description: "two litres",
			Status:      tasks.StatusPending,
			OwnerID:     ownerID,
			ListID:      ulid.Make(),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		ListName: "Groceries",
	}
}

type taskPayload struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	DueDate  string `json:"dueDate"`
	ListID   string `json:"listId"`
	ListName string `json:"listName"`
}

func TestHandleTaskCreate(t *testing.T) {
	user := testUser()
	view := testView(user.ID)

	t.Run("successful create", func(t *testing.T) {
		taskSvc := &stubTasks{
			createFn: func(_ context.Context, ownerID ulid.ULID, params tasks.CreateTaskParams) (*tasks.TaskView, error) {
				assert.Equal(t, user.ID, ownerID)
				assert.Equal(t, "Buy milk", params.Title)
				assert.Equal(t, view.ListID, params.ListID)
				assert.Nil(t, params.DueDate)
				return view, nil
			},
		}
		h := newAPI(t, authAs(user), &stubLists{}, taskSvc)

		rec, env := doRequest(t, h, http.MethodPost, "/api/tasks", testToken,
			`{"title": "Buy milk", "description": "two litres", "listId": "`+view.ListID.String()+`"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Task created", env.Message)

		var got taskPayload
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, view.ID.String(), got.ID)
		assert.Equal(t, "pending", got.Status)
		assert.Equal(t, "Groceries", got.ListName)
	})

	t.Run("due date must be in the future", func(t *testing.T) {
		h := newAPI(t, authAs(user), &stubLists{}, &stubTasks{})

		past := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
		rec, env := doRequest(t, h, http.MethodPost, "/api/tasks", testToken,
			`{"title": "Buy milk", "description": "two litres", "dueDate": "`+past+`", "listId": "`+view.ListID.String()+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.Len(t, env.Errors, 1)
		assert.Equal(t, "dueDate", env.Errors[0].Field)
		assert.Equal(t, "must be in the future", env.Errors[0].Message)
	})

	t.Run("unknown list", func(t *testing.T) {
		taskSvc := &stubTasks{
			createFn: func(context.Context, ulid.ULID, tasks.CreateTaskParams) (*tasks.TaskView, error) {
				return nil, oops.Code("LIST_NOT_FOUND").Wrap(tasks.ErrNotFound)
			},
		}
		h := newAPI(t, authAs(user), &stubLists{}, taskSvc)

		rec, env := doRequest(t, h, http.MethodPost, "/api/tasks", testToken,
			`{"title": "Buy milk", "description": "two litres", "listId": "`+ulid.Make().String()+`"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Task list not found", env.Message)
	})
}

func TestHandleTaskIndex(t *testing.T) {
	user := testUser()

	t.Run("filters reach the service", func(t *testing.T) {
		listID := ulid.Make()
		var captured tasks.TaskFilters
		taskSvc := &stubTasks{
			listFn: func(_ context.Context, _ ulid.ULID, filters tasks.TaskFilters) ([]*tasks.TaskView, error) {
				captured = filters
				return nil, nil
			},
		}
		h := newAPI(t, authAs(user), &stubLists{}, taskSvc)

		from := time.Now().UTC().Truncate(time.Second)
		path := "/api/tasks?listId=" + listID.String() +
			"&status=completed&dueDateFrom=" + from.Format(time.RFC3339)
		rec, env := doRequest(t, h, http.MethodGet, path, testToken, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", string(env.Data))
		require.NotNil(t, captured.ListID)
		assert.Equal(t, listID, *captured.ListID)
		require.NotNil(t, captured.Status)
		assert.Equal(t, tasks.StatusCompleted, *captured.Status)
		require.NotNil(t, captured.DueDateFrom)
		assert.True(t, captured.DueDateFrom.Equal(from))
		assert.Nil(t, captured.DueDateTo)
	})

	t.Run("bad filter values fail the request", func(t *testing.T) {
		h := newAPI(t, authAs(user), &stubLists{}, &stubTasks{})

		rec, env := doRequest(t, h, http.MethodGet, "/api/tasks?status=done&listId=nope", testToken, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Len(t, env.Errors, 2)
	})
}

func TestHandleTaskShow(t *testing.T) {
	user := testUser()

	t.Run("found", func(t *testing.T) {
		view := testView(user.ID)
		due := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
		view.DueDate = &due

		taskSvc := &stubTasks{
			getFn: func(_ context.Context, id, ownerID ulid.ULID) (*tasks.TaskView, error) {
				assert.Equal(t, view.ID, id)
				assert.Equal(t, user.ID, ownerID)
				return view, nil
			},
		}
		h := newAPI(t, authAs(user), &stubLists{}, taskSvc)

		rec, env := doRequest(t, h, http.MethodGet, "/api/tasks/"+view.ID.String(), testToken, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var got taskPayload
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, view.ID.String(), got.ID)
		assert.NotEmpty(t, got.DueDate)
	})

	t.Run("not found", func(t *testing.T) {
		taskSvc := &stubTasks{
			getFn: func(context.Context, ulid.ULID, ulid.ULID) (*tasks.TaskView, error) {
				return nil, oops.Code("TASK_NOT_FOUND").Wrap(tasks.ErrNotFound)
			},
		}
		h := newAPI(t, authAs(user), &stubLists{}, taskSvc)

		rec, env := doRequest(t, h, http.MethodGet, "/api/tasks/"+ulid.Make().String(), testToken, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Task not found", env.Message)
	})
}

func TestHandleTaskUpdate(t *testing.T) {
	user := testUser()
	view := testView(user.ID)

	t.Run("status change", func(t *testing.T) {
		taskSvc := &stubTasks{
			updateFn: func(_ context.Context, id, ownerID ulid.ULID, patch tasks.TaskPatch) (*tasks.TaskView, error) {
				require.NotNil(t, patch.Status)
				assert.Equal(t, tasks.StatusCompleted, *patch.Status)
				assert.Nil(t, patch.Title)
				updated := *view
				updated.Status = tasks.StatusCompleted
				return &updated, nil
			},
		}
		h := newAPI(t, authAs(user), &stubLists{}, taskSvc)

		rec, env := doRequest(t, h, http.MethodPut, "/api/tasks/"+view.ID.String(), testToken,
			`{"status": "completed"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Task updated", env.Message)

		var got taskPayload
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "completed", got.Status)
	})

	t.Run("moving to an unowned list", func(t *testing.T) {
		taskSvc := &stubTasks{
			updateFn: func(context.Context, ulid.ULID, ulid.ULID, tasks.TaskPatch) (*tasks.TaskView, error) {
				return nil, oops.Code("NEW_LIST_NOT_FOUND").Wrap(tasks.ErrNotFound)
			},
		}
		h := newAPI(t, authAs(user), &stubLists{}, taskSvc)

		rec, env := doRequest(t, h, http.MethodPut, "/api/tasks/"+view.ID.String(), testToken,
			`{"listId": "`+ulid.Make().String()+`"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Task list not found", env.Message)
	})

	t.Run("past due date is accepted", func(t *testing.T) {
		past := time.Now().Add(-48 * time.Hour).UTC().Truncate(time.Second)
		taskSvc := &stubTasks{
			updateFn: func(_ context.Context, _, _ ulid.ULID, patch tasks.TaskPatch) (*tasks.TaskView, error) {
				require.NotNil(t, patch.DueDate)
				assert.True(t, patch.DueDate.Equal(past))
				updated := *view
				updated.DueDate = patch.DueDate
				return &updated, nil
			},
		}
		h := newAPI(t, authAs(user), &stubLists{}, taskSvc)

		rec, env := doRequest(t, h, http.MethodPut, "/api/tasks/"+view.ID.String(), testToken,
			`{"dueDate": "`+past.Format(time.RFC3339)+`"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Task updated", env.Message)
	})

	t.Run("description cleared to empty", func(t *testing.T) {
		taskSvc := &stubTasks{
			updateFn: func(_ context.Context, _, _ ulid.ULID, patch tasks.TaskPatch) (*tasks.TaskView, error) {
				require.NotNil(t, patch.Description)
				assert.Equal(t, "", *patch.Description)
				updated := *view
				updated.Description = ""
				return &updated, nil
			},
		}
		h := newAPI(t, authAs(user), &stubLists{}, taskSvc)

		rec, env := doRequest(t, h, http.MethodPut, "/api/tasks/"+view.ID.String(), testToken,
			`{"description": ""}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Task updated", env.Message)
	})

	t.Run("unknown status rejected before the service", func(t *testing.T) {
		h := newAPI(t, authAs(user), &stubLists{}, &stubTasks{})

		rec, env := doRequest(t, h, http.MethodPut, "/api/tasks/"+view.ID.String(), testToken,
			`{"status": "done"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotEmpty(t, env.Errors)
		assert.Equal(t, "status", env.Errors[0].Field)
	})
}

func TestHandleTaskDelete(t *testing.T) {
	user := testUser()
	taskID := ulid.Make()

	t.Run("successful delete", func(t *testing.T) {
		taskSvc := &stubTasks{
			deleteFn: func(_ context.Context, id, ownerID ulid.ULID) error {
				assert.Equal(t, taskID, id)
				assert.Equal(t, user.ID, ownerID)
				return nil
			},
		}
		h := newAPI(t, authAs(user), &stubLists{}, taskSvc)

		rec, env := doRequest(t, h, http.MethodDelete, "/api/tasks/"+taskID.String(), testToken, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Task deleted", env.Message)
	})

	t.Run("not found", func(t *testing.T) {
		taskSvc := &stubTasks{
			deleteFn: func(context.Context, ulid.ULID, ulid.ULID) error {
				return oops.Code("TASK_NOT_FOUND").Wrap(tasks.ErrNotFound)
			},
		}
		h := newAPI(t, authAs(user), &stubLists{}, taskSvc)

		rec, env := doRequest(t, h, http.MethodDelete, "/api/tasks/"+taskID.String(), testToken, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Task not found", env.Message)
	})
}
