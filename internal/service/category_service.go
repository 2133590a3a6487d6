package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
	"github.com/tasknest/tasknest-api/internal/store"
)

// CategoryServiceError is a custom error type for category service errors.
type CategoryServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CategoryServiceError.
func (e *CategoryServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("category service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("category service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CategoryServiceError) Unwrap() error {
	return e.Err
}

// NewCategoryServiceError creates a new CategoryServiceError.
func NewCategoryServiceError(operation, message string, err error) *CategoryServiceError {
	return &CategoryServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// CategoryService provides category-related operations. Every method acts
// on behalf of userID; foreign categories fail with ErrNotOwned.
type CategoryService interface {
	// List retrieves the user's categories ordered by name.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)

	// Get retrieves a single category. Returns store.ErrCategoryNotFound
	// if no category has that ID, and ErrNotOwned if it belongs to
	// someone else.
	Get(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error)

	// Create makes a new category owned by userID. Returns
	// store.ErrCategoryNameExists if the user already has a category with
	// that name.
	Create(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error)

	// Rename changes the name of an owned category.
	Rename(ctx context.Context, userID, categoryID uuid.UUID, name string) (*domain.Category, error)

	// Delete removes an owned category. Tasks filed under it are detached
	// first, in the same transaction, and survive as uncategorized tasks.
	Delete(ctx context.Context, userID, categoryID uuid.UUID) error
}

// categoryServiceImpl implements the CategoryService interface.
type categoryServiceImpl struct {
	categoryStore store.CategoryStore
	taskStore     store.TaskStore
	db            *sql.DB
	logger        *slog.Logger
}

// NewCategoryService creates a new CategoryService.
// It returns an error if any of the required dependencies are nil.
func NewCategoryService(
	categoryStore store.CategoryStore,
	taskStore store.TaskStore,
	db *sql.DB,
	logger *slog.Logger,
) (CategoryService, error) {
	if categoryStore == nil {
		return nil, domain.NewValidationError(
			"categoryStore",
			"cannot be nil",
			domain.ErrValidation,
		)
	}
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &categoryServiceImpl{
		categoryStore: categoryStore,
		taskStore:     taskStore,
		db:            db,
		logger:        logger.With(slog.String("component", "category_service")),
	}, nil
}

// List implements CategoryService.List.
func (s *categoryServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	categories, err := s.categoryStore.ListForUser(ctx, userID)
	if err != nil {
		log.Error("failed to list categories",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewCategoryServiceError("list_categories", "failed to list categories", err)
	}

	log.Debug("listed categories",
		slog.String("user_id", userID.String()),
		slog.Int("category_count", len(categories)))

	return categories, nil
}

// Get implements CategoryService.Get.
func (s *categoryServiceImpl) Get(
	ctx context.Context,
	userID, categoryID uuid.UUID,
) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := s.getOwnedCategory(ctx, log, "get_category", userID, categoryID)
	if err != nil {
		return nil, err
	}

	log.Debug("retrieved category",
		slog.String("category_id", categoryID.String()),
		slog.String("user_id", userID.String()))

	return category, nil
}

// Create implements CategoryService.Create.
func (s *categoryServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := domain.NewCategory(userID, name)
	if err != nil {
		log.Debug("rejected invalid category input",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	if err := s.categoryStore.Create(ctx, category); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("category name already taken",
				slog.String("user_id", userID.String()))
		} else {
			log.Error("failed to save category",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return nil, NewCategoryServiceError("create_category", "failed to save category", err)
	}

	log.Info("category created",
		slog.String("category_id", category.ID.String()),
		slog.String("user_id", userID.String()))

	return category, nil
}

// Rename implements CategoryService.Rename.
func (s *categoryServiceImpl) Rename(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	name string,
) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := s.getOwnedCategory(ctx, log, "rename_category", userID, categoryID)
	if err != nil {
		return nil, err
	}

	if err := category.Rename(name); err != nil {
		log.Debug("rejected invalid category name",
			slog.String("error", err.Error()),
			slog.String("category_id", categoryID.String()))
		return nil, err
	}

	if err := s.categoryStore.Update(ctx, category); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("category name already taken",
				slog.String("category_id", categoryID.String()))
		} else {
			log.Error("failed to save category rename",
				slog.String("error", err.Error()),
				slog.String("category_id", categoryID.String()))
		}
		return nil, NewCategoryServiceError("rename_category", "failed to save category", err)
	}

	log.Info("category renamed",
		slog.String("category_id", categoryID.String()),
		slog.String("user_id", userID.String()))

	return category, nil
}

// Delete implements CategoryService.Delete.
// Detaching the category's tasks and deleting the category happen in one
// transaction, so a failure partway leaves every task still categorized.
func (s *categoryServiceImpl) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.getOwnedCategory(ctx, log, "delete_category", userID, categoryID); err != nil {
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTaskStore := s.taskStore.WithTx(tx)
		txCategoryStore := s.categoryStore.WithTx(tx)

		if err := txTaskStore.ClearCategory(ctx, categoryID, userID); err != nil {
			log.Error("failed to detach tasks from category",
				slog.String("error", err.Error()),
				slog.String("category_id", categoryID.String()))
			return NewCategoryServiceError("delete_category", "failed to detach tasks", err)
		}

		if err := txCategoryStore.Delete(ctx, categoryID); err != nil {
			log.Error("failed to delete category",
				slog.String("error", err.Error()),
				slog.String("category_id", categoryID.String()))
			return NewCategoryServiceError("delete_category", "failed to delete category", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Info("category deleted",
		slog.String("category_id", categoryID.String()),
		slog.String("user_id", userID.String()))

	return nil
}

// getOwnedCategory loads a category and verifies it belongs to userID.
func (s *categoryServiceImpl) getOwnedCategory(
	ctx context.Context,
	log *slog.Logger,
	operation string,
	userID, categoryID uuid.UUID,
) (*domain.Category, error) {
	category, err := s.categoryStore.GetByID(ctx, categoryID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("category not found",
				slog.String("category_id", categoryID.String()))
			return nil, NewCategoryServiceError(
				operation,
				"category not found",
				store.ErrCategoryNotFound,
			)
		}
		log.Error("failed to retrieve category",
			slog.String("error", err.Error()),
			slog.String("category_id", categoryID.String()))
		return nil, NewCategoryServiceError(operation, "failed to retrieve category", err)
	}

	if category.UserID != userID {
		log.Warn("user attempted to access another user's category",
			slog.String("category_id", categoryID.String()),
			slog.String("owner_id", category.UserID.String()),
			slog.String("user_id", userID.String()))
		return nil, NewCategoryServiceError(
			operation,
			"category is owned by another user",
			ErrNotOwned,
		)
	}

	return category, nil
}
