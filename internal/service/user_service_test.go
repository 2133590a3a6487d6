package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/store"
)

func newTestUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("taskmaster", "taskmaster@example.com", "a-long-enough-password")
	require.NoError(t, err)
	return user
}

func TestNewUserService(t *testing.T) {
	t.Parallel()

	t.Run("nil user store", func(t *testing.T) {
		t.Parallel()
		_, err := NewUserService(nil, &MockTaskStore{}, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("nil task store", func(t *testing.T) {
		t.Parallel()
		_, err := NewUserService(&MockUserStore{}, nil, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("valid dependencies", func(t *testing.T) {
		t.Parallel()
		svc, err := NewUserService(&MockUserStore{}, &MockTaskStore{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestUserServiceGetProfile(t *testing.T) {
	t.Parallel()

	t.Run("bundles user with task counts", func(t *testing.T) {
		t.Parallel()
		userStore := &MockUserStore{}
		taskStore := &MockTaskStore{}
		svc, err := NewUserService(userStore, taskStore, nil)
		require.NoError(t, err)

		user := newTestUser(t)
		counts := domain.TaskCounts{Total: 5, Completed: 2, Pending: 3}
		userStore.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		taskStore.On("CountForUser", mock.Anything, user.ID).Return(counts, nil)

		profile, err := svc.GetProfile(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user, profile.User)
		assert.Equal(t, counts, profile.Tasks)
	})

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()
		userStore := &MockUserStore{}
		taskStore := &MockTaskStore{}
		svc, err := NewUserService(userStore, taskStore, nil)
		require.NoError(t, err)

		userID := uuid.New()
		userStore.On("GetByID", mock.Anything, userID).Return(nil, store.ErrUserNotFound)

		profile, err := svc.GetProfile(context.Background(), userID)
		assert.Nil(t, profile)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		taskStore.AssertNotCalled(t, "CountForUser", mock.Anything, mock.Anything)
	})

	t.Run("count failure", func(t *testing.T) {
		t.Parallel()
		userStore := &MockUserStore{}
		taskStore := &MockTaskStore{}
		svc, err := NewUserService(userStore, taskStore, nil)
		require.NoError(t, err)

		user := newTestUser(t)
		countErr := errors.New("connection reset")
		userStore.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		taskStore.On("CountForUser", mock.Anything, user.ID).
			Return(domain.TaskCounts{}, countErr)

		profile, err := svc.GetProfile(context.Background(), user.ID)
		assert.Nil(t, profile)
		assert.ErrorIs(t, err, countErr)

		var svcErr *UserServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "get_profile", svcErr.Operation)
	})
}
