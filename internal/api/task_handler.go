package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest-api/internal/api/shared"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
	"github.com/tasknest/tasknest-api/internal/service"
	"github.com/tasknest/tasknest-api/internal/service/auth"
	"github.com/tasknest/tasknest-api/internal/store"
)

// dueDateLayout is the wire format for task due dates. Due dates are
// calendar dates, not instants, so they travel without a time component.
const dueDateLayout = "2006-01-02"

// TaskRequest defines the payload for creating or updating a task.
type TaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description"`
	DueDate     *string    `json:"due_date"    validate:"omitempty,datetime=2006-01-02"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID          string    `json:"id"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     *string   `json:"due_date,omitempty"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskListResponse bundles a task listing with the user's categories, so
// clients can render filter controls without a second request.
type TaskListResponse struct {
	Tasks      []TaskResponse     `json:"tasks"`
	Categories []CategoryResponse `json:"categories"`
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// List handles GET /tasks requests.
// It retrieves the authenticated user's tasks, narrowed by the optional
// category and status query parameters, together with their categories.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return
	}

	filter, err := taskFilterFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	list, err := h.taskService.List(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskListToResponse(list))
}

// Create handles POST /tasks requests.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return
	}

	input, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// Get handles GET /tasks/{id} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Update handles PUT /tasks/{id} requests.
// The payload replaces all editable fields; completion state is untouched
// and changes only through Toggle.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	input, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Update(r.Context(), userID, taskID, input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /tasks/{id} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Toggle handles POST /tasks/{id}/toggle requests.
// It flips the task's completion flag and returns the updated task.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskService.ToggleCompletion(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to toggle task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// decodeTaskRequest parses and validates a task payload, converting it to
// the service input. It writes an error response and returns false when
// the payload is rejected.
func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (service.TaskInput, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return service.TaskInput{}, false
	}

	if err := shared.Validate.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return service.TaskInput{}, false
	}

	input := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TaskPriority(req.Priority),
		CategoryID:  req.CategoryID,
	}

	if req.DueDate != nil && *req.DueDate != "" {
		dueDate, err := time.Parse(dueDateLayout, *req.DueDate)
		if err != nil {
			HandleAPIError(w, r,
				domain.NewValidationError("due_date", "must be a valid date in YYYY-MM-DD format", nil), "")
			return service.TaskInput{}, false
		}
		input.DueDate = &dueDate
	}

	return input, true
}

// taskFilterFromQuery builds a task filter from the request's query
// string. The category parameter must be a UUID when present; status
// values outside the known set leave the list unfiltered.
func taskFilterFromQuery(r *http.Request) (store.TaskFilter, error) {
	filter := store.TaskFilter{
		Status: store.ParseTaskStatusFilter(r.URL.Query().Get("status")),
	}

	if raw := r.URL.Query().Get("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return store.TaskFilter{}, domain.NewValidationError("category", "has invalid format", domain.ErrInvalidID)
		}
		filter.CategoryID = &categoryID
	}

	return filter, nil
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.CategoryID != nil {
		categoryID := task.CategoryID.String()
		resp.CategoryID = &categoryID
	}
	if task.DueDate != nil {
		dueDate := task.DueDate.Format(dueDateLayout)
		resp.DueDate = &dueDate
	}

	return resp
}

// taskListToResponse converts a service.TaskList to a TaskListResponse
func taskListToResponse(list *service.TaskList) TaskListResponse {
	tasks := make([]TaskResponse, 0, len(list.Tasks))
	for _, task := range list.Tasks {
		tasks = append(tasks, taskToResponse(task))
	}

	categories := make([]CategoryResponse, 0, len(list.Categories))
	for _, category := range list.Categories {
		categories = append(categories, categoryToResponse(category))
	}

	return TaskListResponse{Tasks: tasks, Categories: categories}
}
