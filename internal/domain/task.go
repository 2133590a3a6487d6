package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskPriority indicates how urgent a task is.
type TaskPriority string

// Valid priorities, lowest to highest.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// DefaultTaskPriority is applied when a task is created without an
// explicit priority.
const DefaultTaskPriority = TaskPriorityMedium

// IsValid reports whether p is one of the defined priorities.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task validation errors. All wrap ErrValidation.
var (
	ErrEmptyTaskID         = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrEmptyTaskUserID     = fmt.Errorf("%w: task user ID cannot be empty", ErrValidation)
	ErrEmptyTaskTitle      = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	ErrTaskTitleTooLong    = fmt.Errorf("%w: task title must be at most 200 characters long", ErrValidation)
	ErrInvalidTaskPriority = fmt.Errorf("%w: invalid task priority", ErrValidation)
)

// Task is a single to-do item owned by exactly one user. CategoryID and
// DueDate are optional; a nil CategoryID means the task is uncategorized.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	CategoryID  *uuid.UUID   `json:"category_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Completed   bool         `json:"completed"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a Task owned by userID. The owner is stamped here and
// never changes for the life of the task. An empty priority falls back to
// DefaultTaskPriority; a new task always starts out pending.
func NewTask(
	userID uuid.UUID,
	title, description string,
	dueDate *time.Time,
	priority TaskPriority,
	categoryID *uuid.UUID,
) (*Task, error) {
	if priority == "" {
		priority = DefaultTaskPriority
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       strings.TrimSpace(title),
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the Task's fields, returning the first failure found.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if len(t.Title) > 200 {
		return ErrTaskTitleTooLong
	}
	if !t.Priority.IsValid() {
		return ErrInvalidTaskPriority
	}
	return nil
}

// Update replaces the editable fields and bumps UpdatedAt. The owner and
// the completion flag are untouched: ownership is immutable and
// completion changes only through ToggleCompleted. If the new values fail
// validation the task is left unchanged.
func (t *Task) Update(
	title, description string,
	dueDate *time.Time,
	priority TaskPriority,
	categoryID *uuid.UUID,
) error {
	if priority == "" {
		priority = DefaultTaskPriority
	}

	prev := *t
	t.Title = strings.TrimSpace(title)
	t.Description = description
	t.DueDate = dueDate
	t.Priority = priority
	t.CategoryID = categoryID

	if err := t.Validate(); err != nil {
		*t = prev
		return err
	}

	t.UpdatedAt = time.Now().UTC()
	return nil
}

// ToggleCompleted flips the completion flag and bumps UpdatedAt.
func (t *Task) ToggleCompleted() {
	t.Completed = !t.Completed
	t.UpdatedAt = time.Now().UTC()
}

// TaskCounts summarizes a user's tasks for the profile view.
type TaskCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}
