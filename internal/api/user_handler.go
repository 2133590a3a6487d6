package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tasknest/tasknest-api/internal/api/shared"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
	"github.com/tasknest/tasknest-api/internal/service"
	"github.com/tasknest/tasknest-api/internal/service/auth"
)

// ProfileResponse represents the response data for the profile endpoint.
type ProfileResponse struct {
	UserID    string            `json:"user_id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	CreatedAt time.Time         `json:"created_at"`
	Tasks     domain.TaskCounts `json:"tasks"`
}

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// GetProfile handles GET /profile requests.
// It returns the authenticated user's account details along with their
// task counts.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get profile")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profileToResponse(profile))
}

// profileToResponse converts a service.Profile to a ProfileResponse
func profileToResponse(profile *service.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:    profile.User.ID.String(),
		Username:  profile.User.Username,
		Email:     profile.User.Email,
		CreatedAt: profile.User.CreatedAt,
		Tasks:     profile.Tasks,
	}
}
