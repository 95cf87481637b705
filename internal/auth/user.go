// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Name length constraints for user accounts.
const (
	MinNameLength = 2
	MaxNameLength = 50
)

// User represents a registered account. The password is never held in
// plaintext; only the hash produced by a PasswordHasher is stored.
type User struct {
	ID           ulid.ULID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail lowercases and trims an email address. All storage and
// lookups go through this so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser creates a validated User. The email is normalized; the password
// hash must already be computed by a PasswordHasher.
func NewUser(name, email, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	if len(name) < MinNameLength || len(name) > MaxNameLength {
		return nil, oops.Code("USER_INVALID_NAME").
			With("min", MinNameLength).
			With("max", MaxNameLength).
			Errorf("name must be between %d and %d characters", MinNameLength, MaxNameLength)
	}

	email = NormalizeEmail(email)
	if email == "" {
		return nil, oops.Code("USER_INVALID_EMAIL").Errorf("email cannot be empty")
	}

	if passwordHash == "" {
		return nil, oops.Code("USER_INVALID_HASH").Errorf("password hash cannot be empty")
	}

	now := time.Now()
	return &User{
		ID:           ulid.Make(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// UserRepository manages user persistence.
type UserRepository interface {
	// Create stores a new user. Returns ErrEmailTaken (wrapped) if the
	// email is already registered.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID. Returns ErrNotFound (wrapped) if
	// no such user exists.
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	// Returns ErrNotFound (wrapped) if no user has the given email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Exists reports whether a user with the given ID exists.
	Exists(ctx context.Context, id ulid.ULID) (bool, error)
}
