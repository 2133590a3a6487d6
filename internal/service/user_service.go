package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
	"github.com/tasknest/tasknest-api/internal/store"
)

// UserServiceError is a custom error type for user service errors.
type UserServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for UserServiceError.
func (e *UserServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("user service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("user service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *UserServiceError) Unwrap() error {
	return e.Err
}

// NewUserServiceError creates a new UserServiceError.
func NewUserServiceError(operation, message string, err error) *UserServiceError {
	return &UserServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// Profile is a user's account details together with a summary of their
// tasks.
type Profile struct {
	User  *domain.User
	Tasks domain.TaskCounts
}

// UserService provides user account operations beyond authentication.
type UserService interface {
	// GetProfile retrieves the user's account details and task counts.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	userStore store.UserStore
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	userStore store.UserStore,
	taskStore store.TaskStore,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// GetProfile implements UserService.GetProfile.
func (s *userServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("profile requested for missing user",
				slog.String("user_id", userID.String()))
			return nil, NewUserServiceError("get_profile", "user not found", store.ErrUserNotFound)
		}
		log.Error("failed to retrieve user for profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewUserServiceError("get_profile", "failed to retrieve user", err)
	}

	counts, err := s.taskStore.CountForUser(ctx, userID)
	if err != nil {
		log.Error("failed to count tasks for profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewUserServiceError("get_profile", "failed to count tasks", err)
	}

	log.Debug("retrieved profile",
		slog.String("user_id", userID.String()),
		slog.Int("task_total", counts.Total))

	return &Profile{User: user, Tasks: counts}, nil
}
