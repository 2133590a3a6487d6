package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/service"
)

// MockCategoryService implements service.CategoryService for testing
type MockCategoryService struct {
	// ListFn allows test cases to mock the List behavior
	ListFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)

	// GetFn allows test cases to mock the Get behavior
	GetFn func(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error)

	// CreateFn allows test cases to mock the Create behavior
	CreateFn func(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error)

	// RenameFn allows test cases to mock the Rename behavior
	RenameFn func(ctx context.Context, userID, categoryID uuid.UUID, name string) (*domain.Category, error)

	// DeleteFn allows test cases to mock the Delete behavior
	DeleteFn func(ctx context.Context, userID, categoryID uuid.UUID) error

	// Default values used when functions aren't explicitly defined
	Categories []*domain.Category
	Category   *domain.Category
	Err        error
}

var _ service.CategoryService = (*MockCategoryService)(nil)

// List implements the service.CategoryService interface
func (m *MockCategoryService) List(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID)
	}
	return m.Categories, m.Err
}

// Get implements the service.CategoryService interface
func (m *MockCategoryService) Get(
	ctx context.Context,
	userID, categoryID uuid.UUID,
) (*domain.Category, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, categoryID)
	}
	return m.Category, m.Err
}

// Create implements the service.CategoryService interface
func (m *MockCategoryService) Create(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (*domain.Category, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, name)
	}
	return m.Category, m.Err
}

// Rename implements the service.CategoryService interface
func (m *MockCategoryService) Rename(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	name string,
) (*domain.Category, error) {
	if m.RenameFn != nil {
		return m.RenameFn(ctx, userID, categoryID, name)
	}
	return m.Category, m.Err
}

// Delete implements the service.CategoryService interface
func (m *MockCategoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, categoryID)
	}
	return m.Err
}
