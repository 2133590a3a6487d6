package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// Create saves a new category to the store.
	// Returns ErrCategoryNameExists if the owner already has a category
	// with the same name, and validation errors from the domain Category
	// if data is invalid.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique ID, regardless of
	// owner. Callers are responsible for checking ownership before
	// acting on the result. Returns ErrCategoryNotFound if the category
	// does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// ListForUser retrieves the categories owned by userID, ordered by
	// name. Returns an empty slice, not nil, when the user has none.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)

	// Update persists the category's name.
	// Returns ErrCategoryNotFound if the category does not exist, and
	// ErrCategoryNameExists if the new name collides with another of the
	// owner's categories.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category by its ID. Tasks pointing at it must be
	// detached first (see TaskStore.ClearCategory); the services do both
	// inside one transaction. Returns ErrCategoryNotFound if the
	// category does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a CategoryStore that runs its operations on the
	// given transaction. The transaction is created and managed by the
	// caller.
	WithTx(tx *sql.Tx) CategoryStore
}
