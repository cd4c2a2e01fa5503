package handler

import (
	"errors"
	"net/http"

	"github.com/tracklite/tracklite-go/internal/middleware"
	"github.com/tracklite/tracklite-go/internal/model"
	"github.com/tracklite/tracklite-go/internal/service"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{service: svc}
}

// HandleAddTask handles POST /api/v1/tasks requests.
func (h *TaskHandler) HandleAddTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.AddTask(r.Context(), user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskLabelRequired),
			errors.Is(err, service.ErrTaskLabelTooLong),
			errors.Is(err, service.ErrDescriptionTooLong):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrTaskExists):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleListTasks handles GET /api/v1/tasks requests, returning the
// authenticated user's own tasks.
func (h *TaskHandler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}
