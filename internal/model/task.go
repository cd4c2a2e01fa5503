package model

import "time"

// Task represents a recorded task in the database.
//
// Stop is nullable and currently never written by any operation; the column
// is kept so existing rows keep their shape.
type Task struct {
	ID          int64
	UserID      int64
	Label       string
	Description string
	Start       time.Time
	Stop        *time.Time
}

// CreateTaskRequest represents an add-task request.
type CreateTaskRequest struct {
	Task        string `json:"task"`
	Description string `json:"description"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID          int64      `json:"id"`
	Task        string     `json:"task"`
	Description string     `json:"description,omitempty"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop,omitempty"`
}
