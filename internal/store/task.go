package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
)

// TaskStatusFilter narrows a task listing by completion state. It is a
// closed set: anything other than the two named values means no
// narrowing.
type TaskStatusFilter string

const (
	// TaskStatusAny applies no completion filter.
	TaskStatusAny TaskStatusFilter = ""

	// TaskStatusCompleted keeps only completed tasks.
	TaskStatusCompleted TaskStatusFilter = "completed"

	// TaskStatusPending keeps only tasks not yet completed.
	TaskStatusPending TaskStatusFilter = "pending"
)

// ParseTaskStatusFilter maps a raw query value onto the closed filter
// set. Unrecognized values fall back to TaskStatusAny rather than
// erroring, so a stray ?status=anything simply leaves the list
// unfiltered.
func ParseTaskStatusFilter(raw string) TaskStatusFilter {
	switch TaskStatusFilter(raw) {
	case TaskStatusCompleted:
		return TaskStatusCompleted
	case TaskStatusPending:
		return TaskStatusPending
	default:
		return TaskStatusAny
	}
}

// TaskFilter narrows ListForUser results. The zero value matches all of
// the owner's tasks. Both criteria combine with AND when set.
type TaskFilter struct {
	// CategoryID keeps only tasks filed under this category.
	CategoryID *uuid.UUID

	// Status keeps only tasks in the given completion state.
	Status TaskStatusFilter
}

// TaskStore defines the interface for task data persistence. Every query
// that answers on behalf of a user is scoped by the owning user ID; no
// method ever returns another user's tasks.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid,
	// and ErrInvalidEntity if a referenced row does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID, regardless of owner.
	// Callers are responsible for checking ownership before acting on
	// the result. Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListForUser retrieves the tasks owned by userID, narrowed by
	// filter, ordered by creation time (oldest first, ID as tiebreaker).
	// Returns an empty slice, not nil, when nothing matches.
	ListForUser(ctx context.Context, userID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)

	// Update persists the task's editable fields (title, description,
	// due date, priority, category). Owner and completion state are
	// never written here. Returns ErrTaskNotFound if the task does not
	// exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ToggleCompleted atomically flips the completion flag of the task
	// owned by userID and returns the updated row. Returns
	// ErrTaskNotFound if no task matches both the ID and the owner.
	ToggleCompleted(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// CountForUser reports how many tasks userID owns, split by
	// completion state.
	CountForUser(ctx context.Context, userID uuid.UUID) (domain.TaskCounts, error)

	// ClearCategory detaches all of userID's tasks from the given
	// category, leaving them uncategorized. Detaching zero tasks is not
	// an error.
	ClearCategory(ctx context.Context, categoryID, userID uuid.UUID) error

	// WithTx returns a TaskStore that runs its operations on the given
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
