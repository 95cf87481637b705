// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/oops"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/tasks"
	"github.com/tasknest/tasknest/internal/validate"
	"github.com/tasknest/tasknest/pkg/errutil"
)

// Envelope is the uniform response shape for every API endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// statusForCode maps domain error codes to HTTP statuses. Unknown codes
// are treated as internal errors.
func statusForCode(code string) int {
	switch code {
	case "VALIDATION_FAILED", "EMAIL_TAKEN":
		return http.StatusBadRequest
	case "AUTH_INVALID_CREDENTIALS", "TOKEN_INVALID", "TOKEN_EXPIRED", "TOKEN_MISSING", "USER_NOT_FOUND":
		return http.StatusUnauthorized
	case "LIST_NOT_FOUND", "NEW_LIST_NOT_FOUND", "TASK_NOT_FOUND", "OWNER_NOT_FOUND":
		return http.StatusNotFound
	case "LIST_HAS_TASKS":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// messageForCode returns the client-facing message for a domain error
// code. Internal detail never leaves through this path.
func messageForCode(code string) string {
	switch code {
	case "EMAIL_TAKEN":
		return "Email already registered"
	case "AUTH_INVALID_CREDENTIALS":
		return "Invalid email or password"
	case "TOKEN_MISSING":
		return "Authorization token required"
	case "TOKEN_INVALID":
		return "Invalid token"
	case "TOKEN_EXPIRED":
		return "Token expired"
	case "USER_NOT_FOUND":
		return "User not found"
	case "OWNER_NOT_FOUND":
		return "User not found"
	case "LIST_NOT_FOUND", "NEW_LIST_NOT_FOUND":
		return "Task list not found"
	case "TASK_NOT_FOUND":
		return "Task not found"
	case "LIST_HAS_TASKS":
		return "Cannot delete a list that still has tasks"
	case "VALIDATION_FAILED":
		return "Validation failed"
	default:
		return "Internal server error"
	}
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // response write error means the client is gone
	json.NewEncoder(w).Encode(env)
}

// writeData writes a success envelope.
func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// writeError translates a domain error into the envelope. Internal errors
// are logged with their full chain and reach the client as an opaque 500.
func writeError(logger *slog.Logger, w http.ResponseWriter, err error) {
	code := ""
	if oopsErr, ok := oops.AsOops(err); ok {
		code = oopsErr.Code()
	}
	status := statusForCode(code)
	if status == http.StatusInternalServerError {
		errutil.LogError(logger, "request failed", err)
	}
	writeJSON(w, status, Envelope{Success: false, Message: messageForCode(code)})
}

// writeValidation writes the 400 envelope for field-level failures.
func writeValidation(w http.ResponseWriter, fieldErrs []validate.FieldError) {
	writeJSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: messageForCode("VALIDATION_FAILED"),
		Errors:  fieldErrs,
	})
}

// userJSON is the wire form of a user. The password hash never leaves the
// server.
type userJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserJSON(u *auth.User) userJSON {
	return userJSON{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// listJSON is the wire form of a task list.
type listJSON struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toListJSON(l *tasks.TaskList) listJSON {
	return listJSON{
		ID:          l.ID.String(),
		Name:        l.Name,
		Description: l.Description,
		OwnerID:     l.OwnerID.String(),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// taskJSON is the wire form of a task. ListName is present on view
// endpoints that resolve it.
type taskJSON struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	OwnerID     string     `json:"ownerId"`
	ListID      string     `json:"listId"`
	ListName    string     `json:"listName,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toTaskJSON(t *tasks.Task) taskJSON {
	return taskJSON{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		OwnerID:     t.OwnerID.String(),
		ListID:      t.ListID.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskViewJSON(v *tasks.TaskView) taskJSON {
	out := toTaskJSON(&v.Task)
	out.ListName = v.ListName
	return out
}
