package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	nextID  int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
		if u.Name == user.Name {
			return nil, domain.ErrNameExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

const goodPassword = "Str0ng!pass"

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, NewBcryptHasher(bcrypt.MinCost), NewSessionIssuer("secret", time.Hour), zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), registerInput("alice@example.com", goodPassword, "Alice Smith"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == goodPassword {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(goodPassword)); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.CreatedAt.IsZero() || !user.CreatedAt.Equal(user.UpdatedAt) {
		t.Fatalf("expected matching timestamps, got %v / %v", user.CreatedAt, user.UpdatedAt)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	cases := []struct {
		name  string
		email string
		pass  string
		user  string
		want  error
	}{
		{"missing name", "a@example.com", goodPassword, "", domain.ErrRegisterFieldsMissing},
		{"missing email", "", goodPassword, "Alice", domain.ErrRegisterFieldsMissing},
		{"bad email", "not-an-email", goodPassword, "Alice", domain.ErrInvalidEmail},
		{"bad email wins over weak password", "nope", "weak", "Alice", domain.ErrInvalidEmail},
		{"weak password", "a@example.com", "password", "Alice", domain.ErrWeakPassword},
		{"weak password wins over bad name", "a@example.com", "short", "R2D2", domain.ErrWeakPassword},
		{"digits in name", "a@example.com", goodPassword, "R2D2", domain.ErrInvalidName},
		{"double space in name", "a@example.com", goodPassword, "Alice  Smith", domain.ErrInvalidName},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestAuthService(newStubUserRepo())
			if _, err := svc.Register(context.Background(), registerInput(tc.email, tc.pass, tc.user)); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmailBeforeNameCheck(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), registerInput("bob@example.com", goodPassword, "Bob")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	// The name is invalid too, but the duplicate email is reported first.
	if _, err := svc.Register(context.Background(), registerInput("bob@example.com", goodPassword, "B0b")); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthService_Register_DuplicateName(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), registerInput("bob@example.com", goodPassword, "Bob"))
	if _, err := svc.Register(context.Background(), registerInput("other@example.com", goodPassword, "Bob")); !errors.Is(err, domain.ErrNameExists) {
		t.Fatalf("expected ErrNameExists, got %v", err)
	}
}

func TestAuthService_Register_LookupFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection reset")
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), registerInput("bob@example.com", goodPassword, "Bob"))
	if err == nil {
		t.Fatalf("expected error")
	}
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		t.Fatalf("expected internal error, got domain error %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), registerInput("carol@example.com", goodPassword, "Carol"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "carol@example.com", goodPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.AccessToken == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.User == nil || res.User.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if res.ExpiresIn != time.Hour {
		t.Fatalf("expected expiry of 1h, got %v", res.ExpiresIn)
	}

	userID, err := NewSessionIssuer("secret", time.Hour).Verify(res.AccessToken)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if userID != registered.ID {
		t.Fatalf("expected token for %s, got %s", registered.ID, userID)
	}
}

func TestAuthService_Login_Errors(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)
	_, _ = svc.Register(context.Background(), registerInput("dave@example.com", goodPassword, "Dave"))

	cases := []struct {
		name  string
		email string
		pass  string
		want  error
	}{
		{"missing password", "dave@example.com", "", domain.ErrLoginFieldsMissing},
		{"bad email", "dave", goodPassword, domain.ErrInvalidEmail},
		{"unknown email", "ghost@example.com", goodPassword, domain.ErrUnknownEmail},
		{"wrong password", "dave@example.com", "Wr0ng!pass", domain.ErrPasswordMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Login(context.Background(), tc.email, tc.pass); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthService_GetUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)
	created, _ := svc.Register(context.Background(), registerInput("erin@example.com", goodPassword, "Erin"))

	user, err := svc.GetUser(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if user.Email != "erin@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.GetUser(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func registerInput(email, password, name string) ports.RegisterInput {
	return ports.RegisterInput{Email: email, Password: password, Name: name}
}
