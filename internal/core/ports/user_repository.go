package ports

import (
	"context"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create inserts a new user. Implementations must reject a duplicate
	// username with domain.ErrUserExists at the storage level.
	Create(ctx context.Context, username, passwordHash string) (*domain.User, error)
}
