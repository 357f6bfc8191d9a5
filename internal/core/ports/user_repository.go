package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create persists a new user and returns it with its generated ID.
	// Duplicate emails yield domain.ErrEmailExists, duplicate names domain.ErrNameExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound for unknown or malformed IDs.
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
