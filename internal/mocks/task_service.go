package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/service"
	"github.com/tasknest/tasknest-api/internal/store"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// ListFn allows test cases to mock the List behavior
	ListFn func(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) (*service.TaskList, error)

	// GetFn allows test cases to mock the Get behavior
	GetFn func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// CreateFn allows test cases to mock the Create behavior
	CreateFn func(ctx context.Context, userID uuid.UUID, input service.TaskInput) (*domain.Task, error)

	// UpdateFn allows test cases to mock the Update behavior
	UpdateFn func(ctx context.Context, userID, taskID uuid.UUID, input service.TaskInput) (*domain.Task, error)

	// DeleteFn allows test cases to mock the Delete behavior
	DeleteFn func(ctx context.Context, userID, taskID uuid.UUID) error

	// ToggleCompletionFn allows test cases to mock the ToggleCompletion behavior
	ToggleCompletionFn func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// Default values used when functions aren't explicitly defined
	TaskList *service.TaskList
	Task     *domain.Task
	Err      error
}

var _ service.TaskService = (*MockTaskService)(nil)

// List implements the service.TaskService interface
func (m *MockTaskService) List(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
) (*service.TaskList, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, filter)
	}
	return m.TaskList, m.Err
}

// Get implements the service.TaskService interface
func (m *MockTaskService) Get(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, taskID)
	}
	return m.Task, m.Err
}

// Create implements the service.TaskService interface
func (m *MockTaskService) Create(
	ctx context.Context,
	userID uuid.UUID,
	input service.TaskInput,
) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, input)
	}
	return m.Task, m.Err
}

// Update implements the service.TaskService interface
func (m *MockTaskService) Update(
	ctx context.Context,
	userID, taskID uuid.UUID,
	input service.TaskInput,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, taskID, input)
	}
	return m.Task, m.Err
}

// Delete implements the service.TaskService interface
func (m *MockTaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, taskID)
	}
	return m.Err
}

// ToggleCompletion implements the service.TaskService interface
func (m *MockTaskService) ToggleCompletion(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	if m.ToggleCompletionFn != nil {
		return m.ToggleCompletionFn(ctx, userID, taskID)
	}
	return m.Task, m.Err
}
