// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package httpapi

import (
	"net/http"

	"github.com/tasknest/tasknest/internal/tasks"
	"github.com/tasknest/tasknest/internal/validate"
)

func (s *Server) handleListCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := IdentityFromContext(r.Context())

	var req validate.ListCreateRequest
	if !s.decodeBody(w, r, validate.SchemaListCreate, &req) {
		return
	}

	list, err := s.lists.Create(r.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeData(w, http.StatusCreated, "Task list created", toListJSON(list))
}

func (s *Server) handleListIndex(w http.ResponseWriter, r *http.Request) {
	user, _ := IdentityFromContext(r.Context())

	lists, err := s.lists.List(r.Context(), user.ID)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	out := make([]listJSON, 0, len(lists))
	for _, l := range lists {
		out = append(out, toListJSON(l))
	}
	writeData(w, http.StatusOK, "", out)
}

func (s *Server) handleListShow(w http.ResponseWriter, r *http.Request) {
	user, _ := IdentityFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	list, err := s.lists.Get(r.Context(), id, user.ID)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeData(w, http.StatusOK, "", toListJSON(list))
}

func (s *Server) handleListUpdate(w http.ResponseWriter, r *http.Request) {
	user, _ := IdentityFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req validate.ListUpdateRequest
	if !s.decodeBody(w, r, validate.SchemaListUpdate, &req) {
		return
	}

	list, err := s.lists.Update(r.Context(), id, user.ID, tasks.ListPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeData(w, http.StatusOK, "Task list updated", toListJSON(list))
}

func (s *Server) handleListDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := IdentityFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.lists.Delete(r.Context(), id, user.ID); err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeData(w, http.StatusOK, "Task list deleted", nil)
}

// listTasksJSON is the payload of GET /api/lists/{id}/tasks.
type listTasksJSON struct {
	ListName string     `json:"listName"`
	Tasks    []taskJSON `json:"tasks"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user, _ := IdentityFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	items, listName, err := s.tasks.ListByList(r.Context(), id, user.ID)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	out := make([]taskJSON, 0, len(items))
	for _, t := range items {
		out = append(out, toTaskJSON(t))
	}
	writeData(w, http.StatusOK, "", listTasksJSON{ListName: listName, Tasks: out})
}
