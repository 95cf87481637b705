// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

// Package tasks provides the owner-scoped task and task-list domain.
//
// Every query and mutation is filtered by the authenticated owner's ID.
// Cross-owner access is indistinguishable from "not found" so callers
// cannot probe for the existence of other users' data.
//
// TaskList and Task values should be created with NewTaskList and NewTask,
// which validate field bounds and referential fields at write time.
// Services perform the referential checks (owner exists, list owned by the
// caller) explicitly before writes; nothing is enforced by persistence
// hooks.
package tasks
