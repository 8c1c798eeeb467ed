package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/chathub/internal/middleware"
)

func TestLogger_InjectsRequestScopedLogger(t *testing.T) {
	e := echo.New()
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)

	var sawLogger bool
	e.GET("/", func(c echo.Context) error {
		logger := middleware.FromContext(c.Request().Context())
		sawLogger = logger != nil
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawLogger)
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	logger := middleware.FromContext(context.Background())
	assert.NotNil(t, logger)
}
