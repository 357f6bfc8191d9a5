package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to a status code by their Kind.
//   - Logs the internal cause of every 5xx without leaking it to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var de *domain.Error
	if errors.As(err, &de) {
		return statusForKind(de.Kind), de.Msg
	}

	// Echo's own errors (bind failures, 404 from router, etc.) and
	// handler errors carrying a public message plus an internal cause.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logUnhandled(log, c, he.Internal, he.Code)
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	logUnhandled(log, c, err, http.StatusInternalServerError)
	return http.StatusInternalServerError, "internal server error"
}

// statusForKind keeps validation failures on 401 to match what existing
// clients of the auth endpoints expect.
func statusForKind(k domain.Kind) int {
	switch k {
	case domain.KindValidation, domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindUnsupportedMedia, domain.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func logUnhandled(log zerolog.Logger, c echo.Context, cause error, code int) {
	log.Error().
		Err(cause).
		Int("status", code).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
