package service

import (
	"context"
	"errors"
	"time"

	"github.com/tracklite/tracklite-go/internal/model"
	"github.com/tracklite/tracklite-go/internal/repository"
)

const (
	maxLabelLen       = 64
	maxDescriptionLen = 128
)

var (
	ErrTaskLabelRequired  = errors.New("task is required")
	ErrTaskLabelTooLong   = errors.New("task must be at most 64 characters")
	ErrDescriptionTooLong = errors.New("description must be at most 128 characters")
	ErrTaskExists         = errors.New("task already exists")
)

// TaskService owns the task registry. Tasks are create-and-list only; no
// update or delete operation is exposed.
type TaskService struct {
	store TaskStore
}

// NewTaskService creates a new TaskService.
func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// AddTask records a new task owned by the given user. Labels are unique
// across the whole system, not per user; a label taken by any user's task
// conflicts. Start is set to the current time and stop stays unset.
func (s *TaskService) AddTask(ctx context.Context, userID int64, req model.CreateTaskRequest) (model.TaskResponse, error) {
	if req.Task == "" {
		return model.TaskResponse{}, ErrTaskLabelRequired
	}
	if len(req.Task) > maxLabelLen {
		return model.TaskResponse{}, ErrTaskLabelTooLong
	}
	if len(req.Description) > maxDescriptionLen {
		return model.TaskResponse{}, ErrDescriptionTooLong
	}

	if _, err := s.store.GetByLabel(ctx, req.Task); err == nil {
		return model.TaskResponse{}, ErrTaskExists
	} else if !errors.Is(err, repository.ErrTaskNotFound) {
		return model.TaskResponse{}, err
	}

	task := &model.Task{
		UserID:      userID,
		Label:       req.Task,
		Description: req.Description,
		Start:       time.Now().UTC(),
	}

	if err := s.store.Create(ctx, task); err != nil {
		if errors.Is(err, repository.ErrDuplicateLabel) {
			return model.TaskResponse{}, ErrTaskExists
		}
		return model.TaskResponse{}, err
	}

	return taskToResponse(task), nil
}

// ListTasks returns all tasks owned by the given user in storage order.
func (s *TaskService) ListTasks(ctx context.Context, userID int64) ([]model.TaskResponse, error) {
	tasks, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return tasksToResponse(tasks), nil
}

func taskToResponse(task *model.Task) model.TaskResponse {
	return model.TaskResponse{
		ID:          task.ID,
		Task:        task.Label,
		Description: task.Description,
		Start:       task.Start,
		Stop:        task.Stop,
	}
}

// tasksToResponse converts a slice of Task to its API representation.
func tasksToResponse(tasks []model.Task) []model.TaskResponse {
	result := make([]model.TaskResponse, len(tasks))
	for i := range tasks {
		result[i] = taskToResponse(&tasks[i])
	}
	return result
}
