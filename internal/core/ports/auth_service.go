package ports

import (
	"context"
	"time"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// RegisterInput carries the raw registration fields as submitted.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	AccessToken string
	User        *domain.User
	ExpiresIn   time.Duration
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// PasswordHasher derives and checks one-way password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// SessionIssuer issues and verifies stateless bearer tokens.
type SessionIssuer interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
	// Verify returns the user ID bound to token or domain.ErrInvalidToken.
	Verify(token string) (string, error)
	TTL() time.Duration
}
