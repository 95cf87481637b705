// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

// Package mocks provides testify mocks for the tasks package interfaces.
package mocks

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/tasknest/tasknest/internal/tasks"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockTaskListRepository is a mock tasks.TaskListRepository.
type MockTaskListRepository struct {
	mock.Mock
}

// NewMockTaskListRepository creates a mock whose expectations are asserted
// at test cleanup.
func NewMockTaskListRepository(t testingT) *MockTaskListRepository {
	m := &MockTaskListRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTaskListRepository) Create(ctx context.Context, list *tasks.TaskList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockTaskListRepository) ListByOwner(ctx context.Context, ownerID ulid.ULID) ([]*tasks.TaskList, error) {
	args := m.Called(ctx, ownerID)
	var lists []*tasks.TaskList
	if v := args.Get(0); v != nil {
		lists = v.([]*tasks.TaskList)
	}
	return lists, args.Error(1)
}

func (m *MockTaskListRepository) GetByID(ctx context.Context, id, ownerID ulid.ULID) (*tasks.TaskList, error) {
	args := m.Called(ctx, id, ownerID)
	var list *tasks.TaskList
	if v := args.Get(0); v != nil {
		list = v.(*tasks.TaskList)
	}
	return list, args.Error(1)
}

func (m *MockTaskListRepository) Update(ctx context.Context, list *tasks.TaskList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockTaskListRepository) Delete(ctx context.Context, id, ownerID ulid.ULID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

// MockTaskRepository is a mock tasks.TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

// NewMockTaskRepository creates a mock whose expectations are asserted at
// test cleanup.
func NewMockTaskRepository(t testingT) *MockTaskRepository {
	m := &MockTaskRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTaskRepository) Create(ctx context.Context, task *tasks.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, ownerID ulid.ULID, filters tasks.TaskFilters) ([]*tasks.TaskView, error) {
	args := m.Called(ctx, ownerID, filters)
	var views []*tasks.TaskView
	if v := args.Get(0); v != nil {
		views = v.([]*tasks.TaskView)
	}
	return views, args.Error(1)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id, ownerID ulid.ULID) (*tasks.TaskView, error) {
	args := m.Called(ctx, id, ownerID)
	var view *tasks.TaskView
	if v := args.Get(0); v != nil {
		view = v.(*tasks.TaskView)
	}
	return view, args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *tasks.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id, ownerID ulid.ULID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockTaskRepository) ListByList(ctx context.Context, listID, ownerID ulid.ULID) ([]*tasks.Task, error) {
	args := m.Called(ctx, listID, ownerID)
	var items []*tasks.Task
	if v := args.Get(0); v != nil {
		items = v.([]*tasks.Task)
	}
	return items, args.Error(1)
}

// MockOwnerDirectory is a mock tasks.OwnerDirectory.
type MockOwnerDirectory struct {
	mock.Mock
}

// NewMockOwnerDirectory creates a mock whose expectations are asserted at
// test cleanup.
func NewMockOwnerDirectory(t testingT) *MockOwnerDirectory {
	m := &MockOwnerDirectory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOwnerDirectory) Exists(ctx context.Context, id ulid.ULID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var (
	_ tasks.TaskListRepository = (*MockTaskListRepository)(nil)
	_ tasks.TaskRepository     = (*MockTaskRepository)(nil)
	_ tasks.OwnerDirectory     = (*MockOwnerDirectory)(nil)
)
