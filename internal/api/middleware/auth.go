package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

const (
	msgTokenRequired = "401 Unauthorized: Authorization token required for entry."
	msgTokenInvalid  = "401 Unauthorized: Invalid or expired Authorization token."
)

// UserLookup resolves the user bound to a verified token.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth verifies the bearer token and injects "user_id" and "user" into the
// context. A token whose user no longer exists still passes with a nil user.
func Auth(sessions ports.SessionIssuer, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenRequired)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenInvalid)
			}

			userID, err := sessions.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenInvalid)
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenInvalid).SetInternal(err)
			}

			c.Set("user_id", userID)
			c.Set("user", user)

			return next(c)
		}
	}
}

// Optional applies mw only when enabled is true.
func Optional(enabled bool, mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	if enabled {
		return mw
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
}
