package repository

import (
	"errors"
	"testing"
)

func TestNewUserRepository(t *testing.T) {
	repo := NewUserRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil UserRepository")
	}
	if repo.db != nil {
		t.Fatal("expected nil db when constructed with nil")
	}
}

func TestSentinelErrors(t *testing.T) {
	if ErrUserNotFound.Error() != "user not found" {
		t.Fatalf("unexpected error message: %s", ErrUserNotFound.Error())
	}
	if ErrDuplicateUsername.Error() != "username already exists" {
		t.Fatalf("unexpected error message: %s", ErrDuplicateUsername.Error())
	}
	if ErrDuplicateEmail.Error() != "email already exists" {
		t.Fatalf("unexpected error message: %s", ErrDuplicateEmail.Error())
	}
}

func TestDuplicateKeyError(t *testing.T) {
	if dup, _ := duplicateKeyError(nil); dup {
		t.Fatal("nil error should not be a duplicate key error")
	}
	if dup, _ := duplicateKeyError(ErrUserNotFound); dup {
		t.Fatal("ErrUserNotFound should not be a duplicate key error")
	}

	usernameErr := errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'users.username'")
	dup, err := duplicateKeyError(usernameErr)
	if !dup || err != ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername, got dup=%v err=%v", dup, err)
	}

	emailErr := errors.New("Error 1062 (23000): Duplicate entry 'a@b.com' for key 'users.email'")
	dup, err = duplicateKeyError(emailErr)
	if !dup || err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got dup=%v err=%v", dup, err)
	}
}
