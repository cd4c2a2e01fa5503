package service

import (
	"context"
	"time"

	"github.com/tracklite/tracklite-go/internal/model"
	"github.com/tracklite/tracklite-go/internal/repository"
)

// memUserStore is an in-memory UserStore used by the service tests. It
// mirrors the repository's conflict semantics, including the unique-index
// backstop on create and update.
type memUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*model.User), nextID: 1}
}

func (s *memUserStore) Create(ctx context.Context, user *model.User) error {
	for _, u := range s.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = s.nextID
	user.CreatedAt = time.Now().UTC()
	s.nextID++
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) UpdateProfile(ctx context.Context, user *model.User) error {
	for id, u := range s.users {
		if id != user.ID && u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	stored, ok := s.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	stored.Username = user.Username
	stored.AboutMe = user.AboutMe
	return nil
}

func (s *memUserStore) TouchLastSeen(ctx context.Context, userID int64, seenAt time.Time) error {
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.LastSeen = seenAt
	return nil
}

// memTaskStore is an in-memory TaskStore with the same global label
// uniqueness as the MySQL repository.
type memTaskStore struct {
	tasks  []model.Task
	nextID int64
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{nextID: 1}
}

func (s *memTaskStore) Create(ctx context.Context, task *model.Task) error {
	for _, t := range s.tasks {
		if t.Label == task.Label {
			return repository.ErrDuplicateLabel
		}
	}
	task.ID = s.nextID
	s.nextID++
	s.tasks = append(s.tasks, *task)
	return nil
}

func (s *memTaskStore) GetByLabel(ctx context.Context, label string) (*model.Task, error) {
	for i := range s.tasks {
		if s.tasks[i].Label == label {
			cp := s.tasks[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrTaskNotFound
}

func (s *memTaskStore) ListByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	var out []model.Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}
