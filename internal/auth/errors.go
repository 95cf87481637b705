// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when creating a user with an email address
// that is already registered (case-insensitive).
var ErrEmailTaken = errors.New("email already registered")
