package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	require.NoError(t, NewHealthHandler().Liveness(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all healthy", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

		h := NewReadinessHandler(map[string]Check{"mongodb": ok, "redis": ok})
		require.NoError(t, h.Readiness(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("one dependency down", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

		h := NewReadinessHandler(map[string]Check{"mongodb": ok, "storage": down})
		require.NoError(t, h.Readiness(c))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body readinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "ok", body.Dependencies["mongodb"].Status)
		assert.Equal(t, "unhealthy", body.Dependencies["storage"].Status)
		assert.Equal(t, "connection refused", body.Dependencies["storage"].Error)
	})
}
