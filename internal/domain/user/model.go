// Package user provides application accounts and authentication.
package user

import (
	"context"
	"strings"
	"time"

	"locafest/internal/core/apperror"
)

// Role of an account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is one application account.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks invariants before persistence.
func (u *User) Validate(ctx context.Context) error {
	if strings.TrimSpace(u.Username) == "" {
		return apperror.NewValidation("username is required")
	}
	if u.Role != RoleAdmin && u.Role != RoleUser {
		return apperror.NewValidation("role must be admin or user")
	}
	return nil
}

// Repository defines the interface for account persistence.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
}
