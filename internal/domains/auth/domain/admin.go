package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrInvalidHash   = errors.New("password hash is not a bcrypt hash")
)

// Admin is an operator allowed to sign in to the storefront back office.
// Only the bcrypt hash of the password is ever held.
type Admin struct {
	Username     string
	PasswordHash string
}

// NewAdmin hashes password with bcrypt's default cost.
func NewAdmin(username, password string) (*Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Admin{Username: username, PasswordHash: string(hash)}, nil
}

// NewAdminWithHash accepts an already hashed password, e.g. from configuration.
func NewAdminWithHash(username, hash string) (*Admin, error) {
	admin := &Admin{Username: strings.TrimSpace(username), PasswordHash: strings.TrimSpace(hash)}
	if err := admin.Validate(); err != nil {
		return nil, err
	}
	return admin, nil
}

func (a *Admin) Validate() error {
	if strings.TrimSpace(a.Username) == "" {
		return ErrEmptyUsername
	}
	if _, err := bcrypt.Cost([]byte(a.PasswordHash)); err != nil {
		return ErrInvalidHash
	}
	return nil
}

// CheckPassword compares password against the stored hash.
func (a *Admin) CheckPassword(password string) bool {
	if password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// Session is an authenticated admin session identified by an opaque token.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
