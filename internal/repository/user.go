package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/tracklite/tracklite-go/internal/model"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, about_me, last_seen, created_at`

// Create inserts a new user and sets the generated ID on the user struct.
// Duplicate-key failures on the username or email unique indexes are mapped
// to the matching sentinel, so a lost check-then-insert race still surfaces
// as a conflict.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, email, password_hash, about_me) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.AboutMe)
	if err != nil {
		if dup, dupErr := duplicateKeyError(err); dup {
			return dupErr
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByUsername retrieves a user by exact username match.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// UpdateProfile updates a user's username and about_me fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET username = ?, about_me = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, user.Username, user.AboutMe, user.ID)
	if err != nil {
		if dup, dupErr := duplicateKeyError(err); dup {
			return dupErr
		}
		return err
	}

	return nil
}

// TouchLastSeen sets a user's last_seen to the given time.
func (r *UserRepository) TouchLastSeen(ctx context.Context, userID int64, seenAt time.Time) error {
	query := `UPDATE users SET last_seen = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, seenAt, userID)
	return err
}

func (r *UserRepository) scanOne(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.AboutMe, &user.LastSeen, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// duplicateKeyError maps a MySQL duplicate entry error (code 1062) to the
// sentinel for the violated unique index.
func duplicateKeyError(err error) (bool, error) {
	if err == nil || !strings.Contains(err.Error(), "Duplicate entry") {
		return false, nil
	}
	if strings.Contains(err.Error(), "email") {
		return true, ErrDuplicateEmail
	}
	return true, ErrDuplicateUsername
}
