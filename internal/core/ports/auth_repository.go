package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// UserRepository defines the interface for user identity persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
