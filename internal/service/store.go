package service

import (
	"context"
	"time"

	"github.com/tracklite/tracklite-go/internal/model"
)

// UserStore is the persistence surface the auth service needs. The MySQL
// implementation lives in internal/repository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	TouchLastSeen(ctx context.Context, userID int64, seenAt time.Time) error
}

// TaskStore is the persistence surface the task service needs.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByLabel(ctx context.Context, label string) (*model.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Task, error)
}
