package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	// GetProfileFn allows test cases to mock the GetProfile behavior
	GetProfileFn func(ctx context.Context, userID uuid.UUID) (*service.Profile, error)

	// Default values used when functions aren't explicitly defined
	Profile *service.Profile
	Err     error
}

var _ service.UserService = (*MockUserService)(nil)

// GetProfile implements the service.UserService interface
func (m *MockUserService) GetProfile(
	ctx context.Context,
	userID uuid.UUID,
) (*service.Profile, error) {
	if m.GetProfileFn != nil {
		return m.GetProfileFn(ctx, userID)
	}
	return m.Profile, m.Err
}
