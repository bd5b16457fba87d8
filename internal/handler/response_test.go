package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"menucraft/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetRestaurantIDFromContext(t *testing.T) {
	e := echo.New()
	newCtx := func() echo.Context {
		return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	}

	t.Run("set by auth middleware", func(t *testing.T) {
		c := newCtx()
		c.Set(middleware.CtxRestaurantIDKey, int64(5))

		id, ok := getRestaurantIDFromContext(c)
		assert.True(t, ok)
		assert.Equal(t, int64(5), id)
	})

	t.Run("missing", func(t *testing.T) {
		_, ok := getRestaurantIDFromContext(newCtx())
		assert.False(t, ok)
	})

	t.Run("wrong type", func(t *testing.T) {
		c := newCtx()
		c.Set(middleware.CtxRestaurantIDKey, "5")

		_, ok := getRestaurantIDFromContext(c)
		assert.False(t, ok)
	})
}
