package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	sessions ports.SessionIssuer
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, sessions ports.SessionIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, sessions: sessions, logger: logger}
}

// Register validates the submitted credentials in a fixed order and stores
// the new user. The duplicate email lookup runs before the name check.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, domain.ErrRegisterFieldsMissing
	}
	if !isEmail(in.Email) {
		return nil, domain.ErrInvalidEmail
	}
	if !isStrongPassword(in.Password) {
		return nil, domain.ErrWeakPassword
	}

	_, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	if !isPersonName(in.Name) {
		return nil, domain.ErrInvalidName
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) || errors.Is(err, domain.ErrNameExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.UsersRegisteredTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login checks the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_input").Inc()
		return nil, domain.ErrLoginFieldsMissing
	}
	if !isEmail(email) {
		metrics.LoginsTotal.WithLabelValues("invalid_input").Inc()
		return nil, domain.ErrInvalidEmail
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("unknown_email").Inc()
			return nil, domain.ErrUnknownEmail
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return nil, domain.ErrPasswordMismatch
	}

	token, _, err := s.sessions.Issue(user.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Debug().Str("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{
		AccessToken: token,
		User:        user,
		ExpiresIn:   s.sessions.TTL(),
	}, nil
}

// GetUser returns the public profile of a user.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
