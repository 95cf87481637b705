// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package tasks

import "errors"

// ErrNotFound is returned when a requested task or task list does not
// exist for the given owner. Absent and owned-by-someone-else are
// deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

// ErrListHasTasks is returned when deleting a task list that still has
// tasks referencing it.
var ErrListHasTasks = errors.New("list has tasks")
