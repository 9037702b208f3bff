package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	// Role defaults to domain.RoleUser when empty.
	Role string
}

// AuthService defines registration and login use cases.
type AuthService interface {
	// Register validates the input, persists the account, and returns a
	// session token alongside the created user.
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	// Login verifies credentials and returns a fresh session token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// EnsureAdmin creates the bootstrap admin account when it does not exist.
	EnsureAdmin(ctx context.Context, username, email, password string) error
}
