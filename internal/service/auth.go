package service

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/tracklite/tracklite-go/internal/crypto"
	"github.com/tracklite/tracklite-go/internal/model"
	"github.com/tracklite/tracklite-go/internal/repository"
)

const (
	maxUsernameLen = 64
	maxEmailLen    = 120
	maxAboutMeLen  = 140
)

var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTooLong    = errors.New("username must be at most 64 characters")
	ErrEmailTooLong       = errors.New("email must be at most 120 characters")
	ErrAboutMeTooLong     = errors.New("about_me must be at most 140 characters")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService owns the user registry: registration, credential verification
// and profile fields. It also implements middleware.IdentityProvider.
type AuthService struct {
	store          UserStore
	jwtSecret      string
	sessionExpiry  time.Duration
	rememberExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, secret string, sessionExpiry, rememberExpiry time.Duration) *AuthService {
	return &AuthService{
		store:          store,
		jwtSecret:      secret,
		sessionExpiry:  sessionExpiry,
		rememberExpiry: rememberExpiry,
	}
}

// Register creates a new user account and returns a session token.
// Username and email must be unique across all users; uniqueness is
// exact-match. The check here races with concurrent registrations, but the
// unique indexes backstop it and the store reports the same conflict.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	if err := validateRegistration(req); err != nil {
		return model.AuthResponse{}, err
	}

	if _, err := s.store.GetByUsername(ctx, req.Username); err == nil {
		return model.AuthResponse{}, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.AuthResponse{}, err
	}

	if _, err := s.store.GetByEmail(ctx, req.Email); err == nil {
		return model.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.AuthResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.store.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return model.AuthResponse{}, ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.sessionExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{Token: token, User: userToResponse(user)}, nil
}

// Login authenticates a user and returns a session token. Unknown usernames
// and wrong passwords produce the same ErrInvalidCredentials so callers
// cannot enumerate accounts. Remember-me logins get the longer token expiry.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.store.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	expiry := s.sessionExpiry
	if req.Remember {
		expiry = s.rememberExpiry
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, expiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user.LastSeen = time.Now().UTC()
	if err := s.store.TouchLastSeen(ctx, user.ID, user.LastSeen); err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{Token: token, User: userToResponse(user)}, nil
}

// UpdateProfile changes a user's username and about_me. The username
// uniqueness check only runs when the username actually changes, so editing
// about_me alone never conflicts with the user's own record.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (model.UserResponse, error) {
	if req.Username == "" {
		return model.UserResponse{}, ErrUsernameRequired
	}
	if len(req.Username) > maxUsernameLen {
		return model.UserResponse{}, ErrUsernameTooLong
	}
	if len(req.AboutMe) > maxAboutMeLen {
		return model.UserResponse{}, ErrAboutMeTooLong
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	if req.Username != user.Username {
		if _, err := s.store.GetByUsername(ctx, req.Username); err == nil {
			return model.UserResponse{}, ErrUsernameTaken
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, err
		}
	}

	user.Username = req.Username
	user.AboutMe = req.AboutMe

	if err := s.store.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.UserResponse{}, ErrUsernameTaken
		}
		return model.UserResponse{}, err
	}

	return userToResponse(user), nil
}

// GetUser retrieves a user by ID and returns safe user data.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}
	return userToResponse(user), nil
}

// GetByUsername retrieves a user's profile data by exact username.
func (s *AuthService) GetByUsername(ctx context.Context, username string) (model.UserResponse, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}
	return userToResponse(user), nil
}

// LoadUser implements middleware.IdentityProvider.
func (s *AuthService) LoadUser(ctx context.Context, userID int64) (*model.User, error) {
	return s.store.GetByID(ctx, userID)
}

// TouchLastSeen implements middleware.IdentityProvider. The auth middleware
// calls it on every authenticated request, whatever the endpoint.
func (s *AuthService) TouchLastSeen(ctx context.Context, userID int64) error {
	return s.store.TouchLastSeen(ctx, userID, time.Now().UTC())
}

func validateRegistration(req model.RegisterRequest) error {
	if req.Username == "" {
		return ErrUsernameRequired
	}
	if len(req.Username) > maxUsernameLen {
		return ErrUsernameTooLong
	}
	if req.Email == "" {
		return ErrEmailRequired
	}
	if len(req.Email) > maxEmailLen {
		return ErrEmailTooLong
	}
	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		return ErrInvalidEmail
	}
	if req.Password == "" {
		return ErrPasswordRequired
	}
	if req.Password != req.PasswordConfirm {
		return ErrPasswordMismatch
	}
	return nil
}

// userToResponse converts a User to its API representation. The password
// hash never leaves the service layer.
func userToResponse(user *model.User) model.UserResponse {
	return model.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		AboutMe:   user.AboutMe,
		AvatarURL: AvatarURL(user.Email, DefaultAvatarSize),
		LastSeen:  user.LastSeen,
		CreatedAt: user.CreatedAt,
	}
}
