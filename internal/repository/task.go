package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tracklite/tracklite-go/internal/model"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrDuplicateLabel = errors.New("task label already exists")
)

// TaskRepository handles task persistence operations.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task and sets the generated ID on the task struct.
// The stop column is left NULL; no operation writes it.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `INSERT INTO tasks (user_id, task, description, start) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, task.UserID, task.Label, task.Description, task.Start)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return ErrDuplicateLabel
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetByLabel retrieves a task by its label. Labels are unique across all
// users, so no user scoping is applied.
func (r *TaskRepository) GetByLabel(ctx context.Context, label string) (*model.Task, error) {
	query := `SELECT id, user_id, task, description, start, stop FROM tasks WHERE task = ?`

	task := &model.Task{}
	err := r.db.QueryRowContext(ctx, query, label).Scan(
		&task.ID, &task.UserID, &task.Label, &task.Description, &task.Start, &task.Stop,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// ListByUser retrieves all tasks owned by a user in storage order.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	query := `SELECT id, user_id, task, description, start, stop FROM tasks WHERE user_id = ?`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Label, &t.Description, &t.Start, &t.Stop); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}
