package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tracklite/tracklite-go/internal/middleware"
	"github.com/tracklite/tracklite-go/internal/model"
	"github.com/tracklite/tracklite-go/internal/service"
)

// UserHandler handles HTTP requests for profile viewing and editing.
type UserHandler struct {
	users *service.AuthService
	tasks *service.TaskService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.AuthService, tasks *service.TaskService) *UserHandler {
	return &UserHandler{users: users, tasks: tasks}
}

// HandleProfile handles GET /api/v1/users/{username} requests. The profile
// embeds the viewed user's tasks, not the caller's.
func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid username"))
		return
	}

	user, err := h.users.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("user not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.ProfileResponse{User: user, Tasks: tasks})
}

// HandleUpdateProfile handles PUT /api/v1/profile requests.
func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.users.UpdateProfile(r.Context(), user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameRequired),
			errors.Is(err, service.ErrUsernameTooLong),
			errors.Is(err, service.ErrAboutMeTooLong):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrUsernameTaken):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
