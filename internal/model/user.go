package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users. Uniqueness of username
// and email is enforced by the store, not by callers.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByIdentifier(ctx context.Context, identifier string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// User represents a stored user account. PasswordDigest is the salted bcrypt
// digest of the password; the plaintext is never persisted.
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	PasswordDigest string
	FirstName      string
	LastName       string
	IsActive       bool
	IsVerified     bool
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicUser is the outward-facing view of a user. It carries no credential
// material and is the only user shape returned across the service boundary.
type PublicUser struct {
	ID          uuid.UUID
	Username    string
	Email       string
	FirstName   string
	LastName    string
	IsActive    bool
	IsVerified  bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Public returns the outward-facing view of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		IsVerified:  u.IsVerified,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
