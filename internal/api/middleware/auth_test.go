package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/service"
)

type stubUsers struct {
	users map[string]*domain.User
	err   error
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func runAuth(t *testing.T, header string, users *stubUsers) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(service.NewSessionIssuer("secret", time.Hour), users)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c, called
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return body["message"]
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, _, err := service.NewSessionIssuer("secret", time.Hour).Issue("u1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	alice := &domain.User{ID: "u1", Name: "Alice"}

	rec, c, called := runAuth(t, "Bearer "+token, &stubUsers{users: map[string]*domain.User{"u1": alice}})
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Get("user_id") != "u1" {
		t.Fatalf("user_id not set")
	}
	if c.Get("user") != alice {
		t.Fatalf("user not set")
	}
}

func TestAuthMiddleware_DeletedUserStillPasses(t *testing.T) {
	token, _, _ := service.NewSessionIssuer("secret", time.Hour).Issue("gone")

	_, c, called := runAuth(t, "Bearer "+token, &stubUsers{})
	if !called {
		t.Fatalf("next not called")
	}
	if user, _ := c.Get("user").(*domain.User); user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
	if c.Get("user_id") != "gone" {
		t.Fatalf("user_id not set")
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec, _, called := runAuth(t, "", &stubUsers{})
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != msgTokenRequired {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	other, _, _ := service.NewSessionIssuer("other-secret", time.Hour).Issue("u1")

	for name, header := range map[string]string{
		"wrong scheme":  "Token abc",
		"no token":      "Bearer ",
		"garbage token": "Bearer not-a-token",
		"wrong secret":  "Bearer " + other,
	} {
		t.Run(name, func(t *testing.T) {
			rec, _, called := runAuth(t, header, &stubUsers{})
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if msg := errorMessage(t, rec); msg != msgTokenInvalid {
				t.Fatalf("unexpected message %q", msg)
			}
		})
	}
}

func TestAuthMiddleware_StoreFailure(t *testing.T) {
	token, _, _ := service.NewSessionIssuer("secret", time.Hour).Issue("u1")

	rec, _, called := runAuth(t, "Bearer "+token, &stubUsers{err: errors.New("mongo down")})
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptional(t *testing.T) {
	blocking := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error { return echo.ErrUnauthorized }
	}
	next := func(c echo.Context) error { return nil }
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if err := Optional(false, blocking)(next)(c); err != nil {
		t.Fatalf("disabled guard must pass through, got %v", err)
	}
	if err := Optional(true, blocking)(next)(c); err == nil {
		t.Fatalf("enabled guard must apply")
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/missing", func(c echo.Context) error { return echo.ErrNotFound })

	for _, path := range []string{"/ok", "/missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"level":"info"`) || !strings.Contains(lines[0], `"status":200`) {
		t.Fatalf("unexpected ok line: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"warn"`) || !strings.Contains(lines[1], `"status":404`) {
		t.Fatalf("unexpected missing line: %s", lines[1])
	}
}
