// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package validate

import (
	"time"
)

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ListCreateRequest is the body of POST /api/lists.
type ListCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListUpdateRequest is the body of PUT /api/lists/{id}.
// Nil fields are left untouched; the schema requires at least one.
type ListUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// TaskCreateRequest is the body of POST /api/tasks.
type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
	ListID      string `json:"listId"`
}

// TaskUpdateRequest is the body of PUT /api/tasks/{id}.
// Nil fields are left untouched; the schema requires at least one.
type TaskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     *string `json:"dueDate"`
	ListID      *string `json:"listId"`
}

// ParseDueDate parses an RFC 3339 due date. The schema already guarantees
// date-time syntax on the happy path; this guards direct callers.
func ParseDueDate(value string) (*time.Time, *FieldError) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, &FieldError{Field: "dueDate", Message: "must be a valid RFC 3339 timestamp"}
	}
	return &t, nil
}

// ParseNewDueDate parses an RFC 3339 due date and additionally checks that
// it lies in the future. New tasks may not start out overdue; existing
// tasks keep whatever date they carry, so updates go through ParseDueDate.
// The future check cannot be expressed in a schema.
func ParseNewDueDate(value string) (*time.Time, *FieldError) {
	t, fieldErr := ParseDueDate(value)
	if fieldErr != nil {
		return nil, fieldErr
	}
	if !t.After(time.Now()) {
		return nil, &FieldError{Field: "dueDate", Message: "must be in the future"}
	}
	return t, nil
}
