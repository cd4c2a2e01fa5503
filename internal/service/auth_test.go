package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracklite/tracklite-go/internal/crypto"
	"github.com/tracklite/tracklite-go/internal/model"
)

func newTestAuthService() (*AuthService, *memUserStore) {
	store := newMemUserStore()
	svc := NewAuthService(store, "test-secret", time.Hour, 30*24*time.Hour)
	return svc, store
}

func validRegistration() model.RegisterRequest {
	return model.RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "pw1",
		PasswordConfirm: "pw1",
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.RegisterRequest)
		wantErr error
	}{
		{"empty username", func(r *model.RegisterRequest) { r.Username = "" }, ErrUsernameRequired},
		{"empty email", func(r *model.RegisterRequest) { r.Email = "" }, ErrEmailRequired},
		{"empty password", func(r *model.RegisterRequest) { r.Password = "" }, ErrPasswordRequired},
		{"malformed email", func(r *model.RegisterRequest) { r.Email = "not-an-email" }, ErrInvalidEmail},
		{"email with display name", func(r *model.RegisterRequest) { r.Email = "Alice <alice@example.com>" }, ErrInvalidEmail},
		{"password mismatch", func(r *model.RegisterRequest) { r.PasswordConfirm = "pw2" }, ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestAuthService()
			req := validRegistration()
			tt.mutate(&req)

			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)

	login, err := svc.Login(context.Background(), model.LoginRequest{
		Username: "alice",
		Password: "pw1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	req := validRegistration()
	req.Email = "other@example.com"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	req := validRegistration()
	req.Username = "bob"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginUniformFailure(t *testing.T) {
	// Wrong password and unknown username must be indistinguishable.
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, wrongPw := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "wrongpw"})
	_, unknown := svc.Login(context.Background(), model.LoginRequest{Username: "nobody", Password: "pw1"})

	assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), unknown.Error())
}

func TestLoginTouchesLastSeen(t *testing.T) {
	svc, store := newTestAuthService()

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	require.True(t, store.users[resp.User.ID].LastSeen.IsZero())

	_, err = svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)
	assert.False(t, store.users[resp.User.ID].LastSeen.IsZero())
}

func TestLoginRememberExtendsExpiry(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Username: "alice",
		Password: "pw1",
		Remember: true,
	})
	require.NoError(t, err)

	claims, err := crypto.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Greater(t, time.Until(claims.ExpiresAt.Time), 29*24*time.Hour)
}

func TestUpdateProfileAboutMeOnly(t *testing.T) {
	// Changing about_me while keeping the username must never conflict with
	// the user's own record.
	svc, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), resp.User.ID, model.UpdateProfileRequest{
		Username: "alice",
		AboutMe:  "I track tasks",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "I track tasks", updated.AboutMe)
}

func TestUpdateProfileUsernameConflict(t *testing.T) {
	svc, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	bob := validRegistration()
	bob.Username = "bob"
	bob.Email = "bob@example.com"
	_, err = svc.Register(context.Background(), bob)
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), resp.User.ID, model.UpdateProfileRequest{
		Username: "bob",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUpdateProfileAboutMeTooLong(t *testing.T) {
	svc, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	long := make([]byte, maxAboutMeLen+1)
	for i := range long {
		long[i] = 'x'
	}

	_, err = svc.UpdateProfile(context.Background(), resp.User.ID, model.UpdateProfileRequest{
		Username: "alice",
		AboutMe:  string(long),
	})
	assert.ErrorIs(t, err, ErrAboutMeTooLong)
}

func TestPasswordHashNeverExposed(t *testing.T) {
	svc, store := newTestAuthService()

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	stored := store.users[resp.User.ID]
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "pw1")
}
