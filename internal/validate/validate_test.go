// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package validate_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/validate"
)

func newValidator(t *testing.T) *validate.Validator {
	t.Helper()
	v, err := validate.New()
	require.NoError(t, err, "embedded schemas must compile")
	return v
}

func fields(errs []validate.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidator_UnknownSchema(t *testing.T) {
	v := newValidator(t)

	_, err := v.Check("nonexistent", []byte(`{}`))
	require.Error(t, err)
}

func TestValidator_InvalidJSON(t *testing.T) {
	v := newValidator(t)

	errs, err := v.Check(validate.SchemaRegister, []byte(`{"name": `))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].Field)
	assert.Equal(t, "must be valid JSON", errs[0].Message)
}

func TestValidator_Register(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{
			name: "valid body",
			body: `{"name": "Ada Lovelace", "email": "ada@example.com", "password": "password123"}`,
		},
		{
			name:       "all fields missing",
			body:       `{}`,
			wantFields: []string{"name", "email", "password"},
		},
		{
			name:       "name too short",
			body:       `{"name": "A", "email": "ada@example.com", "password": "password123"}`,
			wantFields: []string{"name"},
		},
		{
			name:       "invalid email",
			body:       `{"name": "Ada Lovelace", "email": "not-an-email", "password": "password123"}`,
			wantFields: []string{"email"},
		},
		{
			name:       "password too short",
			body:       `{"name": "Ada Lovelace", "email": "ada@example.com", "password": "12345"}`,
			wantFields: []string{"password"},
		},
		{
			name:       "unknown field rejected",
			body:       `{"name": "Ada Lovelace", "email": "ada@example.com", "password": "password123", "role": "admin"}`,
			wantFields: []string{"body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := v.Check(validate.SchemaRegister, []byte(tt.body))
			require.NoError(t, err)

			if len(tt.wantFields) == 0 {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.ElementsMatch(t, tt.wantFields, fields(errs))
		})
	}
}

func TestValidator_RegisterMissingFieldMessages(t *testing.T) {
	v := newValidator(t)

	errs, err := v.Check(validate.SchemaRegister, []byte(`{"name": "Ada Lovelace"}`))
	require.NoError(t, err)
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, "is required", e.Message)
	}
}

func TestValidator_Login(t *testing.T) {
	v := newValidator(t)

	errs, err := v.Check(validate.SchemaLogin, []byte(`{"email": "ada@example.com", "password": "password123"}`))
	require.NoError(t, err)
	assert.Empty(t, errs)

	errs, err = v.Check(validate.SchemaLogin, []byte(`{"email": "ada@example.com"}`))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "password", errs[0].Field)
}

func TestValidator_ListCreate(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{
			name: "valid with description",
			body: `{"name": "Groceries", "description": "weekly shopping"}`,
		},
		{
			name: "valid without description",
			body: `{"name": "Groceries"}`,
		},
		{
			name:       "empty name",
			body:       `{"name": ""}`,
			wantFields: []string{"name"},
		},
		{
			name:       "name too long",
			body:       `{"name": "` + strings.Repeat("x", 101) + `"}`,
			wantFields: []string{"name"},
		},
		{
			name:       "description too long",
			body:       `{"name": "Groceries", "description": "` + strings.Repeat("x", 501) + `"}`,
			wantFields: []string{"description"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := v.Check(validate.SchemaListCreate, []byte(tt.body))
			require.NoError(t, err)

			if len(tt.wantFields) == 0 {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.ElementsMatch(t, tt.wantFields, fields(errs))
		})
	}
}

func TestValidator_ListUpdate(t *testing.T) {
	v := newValidator(t)

	t.Run("single field is enough", func(t *testing.T) {
		errs, err := v.Check(validate.SchemaListUpdate, []byte(`{"description": "new"}`))
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("empty object is rejected", func(t *testing.T) {
		errs, err := v.Check(validate.SchemaListUpdate, []byte(`{}`))
		require.NoError(t, err)
		require.NotEmpty(t, errs)
		assert.Equal(t, "body", errs[0].Field)
	})
}

func TestValidator_TaskCreate(t *testing.T) {
	v := newValidator(t)

	validListID := "01JCXYZ123456789ABCDEFGHJK"

	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{
			name: "valid minimal task",
			body: `{"title": "Buy milk", "description": "two litres", "listId": "` + validListID + `"}`,
		},
		{
			name: "valid with status and due date",
			body: `{"title": "Buy milk", "description": "two litres", "status": "in_progress",
				"dueDate": "2030-01-02T15:04:05Z", "listId": "` + validListID + `"}`,
		},
		{
			name:       "missing list",
			body:       `{"title": "Buy milk", "description": "two litres"}`,
			wantFields: []string{"listId"},
		},
		{
			name:       "malformed list id",
			body:       `{"title": "Buy milk", "description": "two litres", "listId": "not-a-ulid"}`,
			wantFields: []string{"listId"},
		},
		{
			name:       "unknown status",
			body:       `{"title": "Buy milk", "description": "two litres", "status": "done", "listId": "` + validListID + `"}`,
			wantFields: []string{"status"},
		},
		{
			name:       "malformed due date",
			body:       `{"title": "Buy milk", "description": "two litres", "dueDate": "tomorrow", "listId": "` + validListID + `"}`,
			wantFields: []string{"dueDate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := v.Check(validate.SchemaTaskCreate, []byte(tt.body))
			require.NoError(t, err)

			if len(tt.wantFields) == 0 {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.ElementsMatch(t, tt.wantFields, fields(errs))
		})
	}
}

func TestValidator_TaskUpdate(t *testing.T) {
	v := newValidator(t)

	t.Run("status only", func(t *testing.T) {
		errs, err := v.Check(validate.SchemaTaskUpdate, []byte(`{"status": "completed"}`))
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("description may be cleared", func(t *testing.T) {
		errs, err := v.Check(validate.SchemaTaskUpdate, []byte(`{"description": ""}`))
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("empty object is rejected", func(t *testing.T) {
		errs, err := v.Check(validate.SchemaTaskUpdate, []byte(`{}`))
		require.NoError(t, err)
		require.NotEmpty(t, errs)
	})
}

func TestParseDueDate(t *testing.T) {
	t.Run("future timestamp", func(t *testing.T) {
		value := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
		due, ferr := validate.ParseDueDate(value)
		require.Nil(t, ferr)
		require.NotNil(t, due)
		assert.True(t, due.After(time.Now()))
	})

	t.Run("past timestamp is accepted", func(t *testing.T) {
		value := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
		due, ferr := validate.ParseDueDate(value)
		require.Nil(t, ferr)
		require.NotNil(t, due)
		assert.True(t, due.Before(time.Now()))
	})

	t.Run("garbage input", func(t *testing.T) {
		_, ferr := validate.ParseDueDate("tomorrow")
		require.NotNil(t, ferr)
		assert.Equal(t, "dueDate", ferr.Field)
	})
}

func TestParseNewDueDate(t *testing.T) {
	t.Run("future timestamp", func(t *testing.T) {
		value := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
		due, ferr := validate.ParseNewDueDate(value)
		require.Nil(t, ferr)
		require.NotNil(t, due)
		assert.True(t, due.After(time.Now()))
	})

	t.Run("past timestamp", func(t *testing.T) {
		value := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
		_, ferr := validate.ParseNewDueDate(value)
		require.NotNil(t, ferr)
		assert.Equal(t, "dueDate", ferr.Field)
		assert.Equal(t, "must be in the future", ferr.Message)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, ferr := validate.ParseNewDueDate("tomorrow")
		require.NotNil(t, ferr)
		assert.Equal(t, "dueDate", ferr.Field)
	})
}
