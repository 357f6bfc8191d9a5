package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// ctxUserID returns the caller id attached by the Auth middleware. An empty
// value means the route was mounted without the guard.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// serverError passes domain errors through and hides anything else behind
// msg with a 500. The cause is logged by the central error handler.
func serverError(err error, msg string) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return echo.NewHTTPError(http.StatusInternalServerError, msg).SetInternal(err)
}
