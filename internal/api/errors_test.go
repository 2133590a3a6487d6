package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest-api/internal/api/shared"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/service"
	"github.com/tasknest/tasknest-api/internal/service/auth"
	"github.com/tasknest/tasknest-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError, // Default to 500 for nil error
		},
		{
			name:           "authentication error",
			err:            auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrapped authentication error",
			err:            fmt.Errorf("failed to authenticate: %w", auth.ErrInvalidToken),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "refresh token error",
			err:            auth.ErrExpiredRefreshToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "authorization error",
			err:            service.ErrNotOwned,
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "authorization error wrapped by the service layer",
			err: service.NewTaskServiceError(
				"get_task", "task is owned by another user", service.ErrNotOwned),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "task not found",
			err:            store.ErrTaskNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "task not found wrapped by the service layer",
			err: service.NewTaskServiceError(
				"get_task", "task not found", store.ErrTaskNotFound),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "category not found",
			err:            store.ErrCategoryNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "username conflict",
			err:            store.ErrUsernameExists,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "category name conflict",
			err:            store.ErrCategoryNameExists,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "domain validation error",
			err:            domain.ErrEmptyTaskTitle,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "field validation error",
			err:            domain.NewValidationError("category_id", "must reference one of your categories", nil),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid entity error",
			err:            store.ErrInvalidEntity,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown error",
			err:            errors.New("unknown error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := MapErrorToStatusCode(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{
			name:            "nil error",
			err:             nil,
			expectedMessage: "An unexpected error occurred",
		},
		{
			name:            "invalid token",
			err:             auth.ErrInvalidToken,
			expectedMessage: "Invalid token",
		},
		{
			name:            "expired refresh token",
			err:             auth.ErrExpiredRefreshToken,
			expectedMessage: "Invalid refresh token",
		},
		{
			name:            "not owned",
			err:             service.ErrNotOwned,
			expectedMessage: "You do not own this resource",
		},
		{
			name:            "task not found",
			err:             store.ErrTaskNotFound,
			expectedMessage: "Task not found",
		},
		{
			name:            "category not found",
			err:             store.ErrCategoryNotFound,
			expectedMessage: "Category not found",
		},
		{
			name:            "username exists",
			err:             store.ErrUsernameExists,
			expectedMessage: "Username already taken",
		},
		{
			name:            "email exists",
			err:             store.ErrEmailExists,
			expectedMessage: "Email already registered",
		},
		{
			name:            "category name exists",
			err:             store.ErrCategoryNameExists,
			expectedMessage: "Category name already exists",
		},
		{
			name:            "validation error",
			err:             domain.ErrPasswordTooShort,
			expectedMessage: "Validation error",
		},
		{
			name:            "internal details are never exposed",
			err:             errors.New("pq: connection refused host=10.0.0.5"),
			expectedMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := GetSafeErrorMessage(tt.err)
			assert.Equal(t, tt.expectedMessage, message)
		})
	}
}

func TestValidationErrorFields(t *testing.T) {
	t.Run("validator errors keyed by json name", func(t *testing.T) {
		err := shared.Validate.Struct(RegisterRequest{
			Username:             "ab",
			Email:                "not-an-email",
			Password:             "password1234567",
			PasswordConfirmation: "different1234567",
		})
		require.Error(t, err)

		fields := ValidationErrorFields(err)
		assert.Contains(t, fields, "username")
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password_confirmation")
	})

	t.Run("domain field errors", func(t *testing.T) {
		err := domain.NewValidationError("category_id", "must reference one of your categories", nil)

		fields := ValidationErrorFields(err)
		assert.Equal(t, map[string]string{
			"category_id": "must reference one of your categories",
		}, fields)
	})

	t.Run("non-validation errors yield nil", func(t *testing.T) {
		assert.Nil(t, ValidationErrorFields(errors.New("boom")))
		assert.Nil(t, ValidationErrorFields(store.ErrTaskNotFound))
	})
}

func TestHandleAPIError(t *testing.T) {
	t.Run("writes field errors for validation failures", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/tasks", nil)
		rr := httptest.NewRecorder()

		HandleAPIError(rr, req,
			domain.NewValidationError("due_date", "must be a valid date in YYYY-MM-DD format", nil), "")

		require.Equal(t, http.StatusBadRequest, rr.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "Validation error", resp.Error)
		assert.Contains(t, resp.Fields, "due_date")
	})

	t.Run("writes the safe message for known errors", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tasks/123", nil)
		rr := httptest.NewRecorder()

		HandleAPIError(rr, req, store.ErrTaskNotFound, "Failed to get task")

		require.Equal(t, http.StatusNotFound, rr.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "Task not found", resp.Error)
	})

	t.Run("falls back to the handler message on server errors", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tasks", nil)
		rr := httptest.NewRecorder()

		HandleAPIError(rr, req, errors.New("pq: connection refused"), "Failed to list tasks")

		require.Equal(t, http.StatusInternalServerError, rr.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "Failed to list tasks", resp.Error)
		assert.NotContains(t, rr.Body.String(), "connection refused")
	})
}
