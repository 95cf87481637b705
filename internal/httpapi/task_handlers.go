// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package httpapi

import (
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tasknest/tasknest/internal/tasks"
	"github.com/tasknest/tasknest/internal/validate"
)

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := IdentityFromContext(r.Context())

	var req validate.TaskCreateRequest
	if !s.decodeBody(w, r, validate.SchemaTaskCreate, &req) {
		return
	}

	listID, err := ulid.Parse(req.ListID)
	if err != nil {
		writeValidation(w, []validate.FieldError{{Field: "listId", Message: "must be a valid ULID"}})
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, fieldErr := validate.ParseNewDueDate(req.DueDate)
		if fieldErr != nil {
			writeValidation(w, []validate.FieldError{*fieldErr})
			return
		}
		dueDate = parsed
	}

	view, err := s.tasks.Create(r.Context(), user.ID, tasks.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      tasks.Status(req.Status),
		DueDate:     dueDate,
		ListID:      listID,
	})
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeData(w, http.StatusCreated, "Task created", toTaskViewJSON(view))
}

func (s *Server) handleTaskIndex(w http.ResponseWriter, r *http.Request) {
	user, _ := IdentityFromContext(r.Context())

	filters, fieldErrs := parseTaskFilters(r)
	if len(fieldErrs) > 0 {
		writeValidation(w, fieldErrs)
		return
	}

	views, err := s.tasks.List(r.Context(), user.ID, filters)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	out := make([]taskJSON, 0, len(views))
	for _, v := range views {
		out = append(out, toTaskViewJSON(v))
	}
	writeData(w, http.StatusOK, "", out)
}

// parseTaskFilters reads the optional query filters of GET /api/tasks.
// All supplied filters are combined; bad values fail the request rather
// than being dropped.
func parseTaskFilters(r *http.Request) (tasks.TaskFilters, []validate.FieldError) {
	var filters tasks.TaskFilters
	var fieldErrs []validate.FieldError
	q := r.URL.Query()

	if raw := q.Get("listId"); raw != "" {
		id, err := ulid.Parse(raw)
		if err != nil {
			fieldErrs = append(fieldErrs, validate.FieldError{Field: "listId", Message: "must be a valid ULID"})
		} else {
			filters.ListID = &id
		}
	}
	if raw := q.Get("status"); raw != "" {
		status, err := tasks.ParseStatus(raw)
		if err != nil {
			fieldErrs = append(fieldErrs, validate.FieldError{Field: "status", Message: "must be one of pending, in_progress, completed"})
		} else {
			filters.Status = &status
		}
	}
	if raw := q.Get("dueDateFrom"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fieldErrs = append(fieldErrs, validate.FieldError{Field: "dueDateFrom", Message: "must be a valid RFC 3339 timestamp"})
		} else {
			filters.DueDateFrom = &t
		}
	}
	if raw := q.Get("dueDateTo"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fieldErrs = append(fieldErrs, validate.FieldError{Field: "dueDateTo", Message: "must be a valid RFC 3339 timestamp"})
		} else {
			filters.DueDateTo = &t
		}
	}

	return filters, fieldErrs
}

func (s *Server) handleTaskShow(w http.ResponseWriter, r *http.Request) {
	user, _ := IdentityFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := s.tasks.Get(r.Context(), id, user.ID)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeData(w, http.StatusOK, "", toTaskViewJSON(view))
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	user, _ := IdentityFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req validate.TaskUpdateRequest
	if !s.decodeBody(w, r, validate.SchemaTaskUpdate, &req) {
		return
	}

	var patch tasks.TaskPatch
	patch.Title = req.Title
	patch.Description = req.Description
	if req.Status != nil {
		status, err := tasks.ParseStatus(*req.Status)
		if err != nil {
			writeValidation(w, []validate.FieldError{{Field: "status", Message: "must be one of pending, in_progress, completed"}})
			return
		}
		patch.Status = &status
	}
	if req.DueDate != nil {
		parsed, fieldErr := validate.ParseDueDate(*req.DueDate)
		if fieldErr != nil {
			writeValidation(w, []validate.FieldError{*fieldErr})
			return
		}
		patch.DueDate = parsed
	}
	if req.ListID != nil {
		listID, err := ulid.Parse(*req.ListID)
		if err != nil {
			writeValidation(w, []validate.FieldError{{Field: "listId", Message: "must be a valid ULID"}})
			return
		}
		patch.ListID = &listID
	}

	view, err := s.tasks.Update(r.Context(), id, user.ID, patch)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeData(w, http.StatusOK, "Task updated", toTaskViewJSON(view))
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := IdentityFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.tasks.Delete(r.Context(), id, user.ID); err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeData(w, http.StatusOK, "Task deleted", nil)
}
