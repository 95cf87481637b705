// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package httpapi

import (
	"context"

	"github.com/tasknest/tasknest/internal/auth"
)

type contextKey int

const identityKey contextKey = iota

// withIdentity stores the authenticated user on the request context.
func withIdentity(ctx context.Context, user *auth.User) context.Context {
	return context.WithValue(ctx, identityKey, user)
}

// IdentityFromContext returns the authenticated user set by the request
// gate, or false when the request did not pass through it.
func IdentityFromContext(ctx context.Context) (*auth.User, bool) {
	user, ok := ctx.Value(identityKey).(*auth.User)
	return user, ok
}
