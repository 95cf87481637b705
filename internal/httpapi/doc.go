// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

// Package httpapi exposes the TaskNest REST API. It owns routing,
// request validation, the response envelope, and the bearer-token
// request gate; domain logic lives in the auth and tasks packages.
package httpapi
