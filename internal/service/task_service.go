package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
	"github.com/tasknest/tasknest-api/internal/store"
)

// TaskServiceError is a custom error type for task service errors.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// TaskInput carries the editable fields of a task as supplied by a caller.
// The service validates the category reference against the acting user's
// categories before the value reaches the store.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    domain.TaskPriority
	CategoryID  *uuid.UUID
}

// TaskList bundles a user's filtered tasks with their full category list,
// so clients can render both the tasks and the filter controls from one
// response.
type TaskList struct {
	Tasks      []*domain.Task
	Categories []*domain.Category
}

// TaskService provides task-related operations. Every method acts on
// behalf of userID and never touches another user's rows: reads of foreign
// tasks fail with ErrNotOwned, and listings are owner-scoped at the store.
type TaskService interface {
	// List retrieves the user's tasks narrowed by filter, together with
	// the user's categories.
	List(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) (*TaskList, error)

	// Get retrieves a single task. Returns store.ErrTaskNotFound if no
	// task has that ID, and ErrNotOwned if it belongs to someone else.
	Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// Create makes a new task owned by userID.
	Create(ctx context.Context, userID uuid.UUID, input TaskInput) (*domain.Task, error)

	// Update replaces the editable fields of an owned task.
	Update(ctx context.Context, userID, taskID uuid.UUID, input TaskInput) (*domain.Task, error)

	// Delete removes an owned task.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error

	// ToggleCompletion flips the completion flag of an owned task and
	// returns the updated task. A task that does not exist and a task
	// owned by someone else both come back as store.ErrTaskNotFound.
	ToggleCompletion(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore     store.TaskStore
	categoryStore store.CategoryStore
	logger        *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	categoryStore store.CategoryStore,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if categoryStore == nil {
		return nil, domain.NewValidationError(
			"categoryStore",
			"cannot be nil",
			domain.ErrValidation,
		)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:     taskStore,
		categoryStore: categoryStore,
		logger:        logger.With(slog.String("component", "task_service")),
	}, nil
}

// List implements TaskService.List.
func (s *taskServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
) (*TaskList, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskStore.ListForUser(ctx, userID, filter)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	categories, err := s.categoryStore.ListForUser(ctx, userID)
	if err != nil {
		log.Error("failed to list categories for task list",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewTaskServiceError("list_tasks", "failed to list categories", err)
	}

	log.Debug("listed tasks",
		slog.String("user_id", userID.String()),
		slog.Int("task_count", len(tasks)),
		slog.Int("category_count", len(categories)))

	return &TaskList{Tasks: tasks, Categories: categories}, nil
}

// Get implements TaskService.Get.
func (s *taskServiceImpl) Get(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.getOwnedTask(ctx, log, "get_task", userID, taskID)
	if err != nil {
		return nil, err
	}

	log.Debug("retrieved task",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))

	return task, nil
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	input TaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.resolveCategory(ctx, log, userID, input.CategoryID); err != nil {
		return nil, err
	}

	task, err := domain.NewTask(
		userID,
		input.Title,
		input.Description,
		input.DueDate,
		input.Priority,
		input.CategoryID,
	)
	if err != nil {
		log.Debug("rejected invalid task input",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to save task",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))

	return task, nil
}

// Update implements TaskService.Update.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	userID, taskID uuid.UUID,
	input TaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.getOwnedTask(ctx, log, "update_task", userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.resolveCategory(ctx, log, userID, input.CategoryID); err != nil {
		return nil, err
	}

	if err := task.Update(
		input.Title,
		input.Description,
		input.DueDate,
		input.Priority,
		input.CategoryID,
	); err != nil {
		log.Debug("rejected invalid task update",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		log.Error("failed to save task update",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, NewTaskServiceError("update_task", "failed to save task", err)
	}

	log.Info("task updated",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))

	return task, nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.getOwnedTask(ctx, log, "delete_task", userID, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))

	return nil
}

// ToggleCompletion implements TaskService.ToggleCompletion.
func (s *taskServiceImpl) ToggleCompletion(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// The store flips the flag with a single owner-scoped UPDATE, so a
	// foreign task is indistinguishable from a missing one.
	task, err := s.taskStore.ToggleCompleted(ctx, taskID, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("toggle on missing or foreign task",
				slog.String("task_id", taskID.String()),
				slog.String("user_id", userID.String()))
			return nil, NewTaskServiceError("toggle_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to toggle task completion",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, NewTaskServiceError("toggle_task", "failed to toggle task", err)
	}

	log.Info("task completion toggled",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()),
		slog.Bool("completed", task.Completed))

	return task, nil
}

// getOwnedTask loads a task and verifies it belongs to userID. The load is
// unscoped so a foreign task can be told apart from a missing one: the
// former is ErrNotOwned, the latter store.ErrTaskNotFound.
func (s *taskServiceImpl) getOwnedTask(
	ctx context.Context,
	log *slog.Logger,
	operation string,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found",
				slog.String("task_id", taskID.String()))
			return nil, NewTaskServiceError(operation, "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, NewTaskServiceError(operation, "failed to retrieve task", err)
	}

	if task.UserID != userID {
		log.Warn("user attempted to access another user's task",
			slog.String("task_id", taskID.String()),
			slog.String("owner_id", task.UserID.String()),
			slog.String("user_id", userID.String()))
		return nil, NewTaskServiceError(operation, "task is owned by another user", ErrNotOwned)
	}

	return task, nil
}

// resolveCategory checks that a referenced category exists and belongs to
// userID. A bad reference is a validation failure on the category_id field,
// the same as any other rejected input.
func (s *taskServiceImpl) resolveCategory(
	ctx context.Context,
	log *slog.Logger,
	userID uuid.UUID,
	categoryID *uuid.UUID,
) error {
	if categoryID == nil {
		return nil
	}

	category, err := s.categoryStore.GetByID(ctx, *categoryID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task references unknown category",
				slog.String("category_id", categoryID.String()),
				slog.String("user_id", userID.String()))
			return domain.NewValidationError(
				"category_id",
				"must reference one of your categories",
				nil,
			)
		}
		log.Error("failed to resolve task category",
			slog.String("error", err.Error()),
			slog.String("category_id", categoryID.String()))
		return NewTaskServiceError("resolve_category", "failed to retrieve category", err)
	}

	if category.UserID != userID {
		log.Warn("task references another user's category",
			slog.String("category_id", categoryID.String()),
			slog.String("owner_id", category.UserID.String()),
			slog.String("user_id", userID.String()))
		return domain.NewValidationError(
			"category_id",
			"must reference one of your categories",
			nil,
		)
	}

	return nil
}
