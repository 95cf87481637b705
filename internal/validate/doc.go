// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

// Package validate checks API request bodies against embedded JSON
// Schemas before they reach the domain services. Schemas are closed
// (unknown properties are rejected) and partial-update schemas require
// at least one field.
package validate
