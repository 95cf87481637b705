// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

// Package auth provides authentication primitives for TaskNest.
//
// # Domain Types
//
// User values should be created with NewUser, which normalizes the email
// address and validates required fields. Direct struct initialization
// bypasses validation and may create invalid state; repository
// implementations receive pre-validated values from the constructor.
//
// # Services
//
// Service coordinates registration, login, and session verification over a
// UserRepository, a PasswordHasher, and a TokenService. TokenService issues
// and verifies stateless signed session tokens; nothing is persisted for a
// session, validity is signature plus expiry.
package auth
