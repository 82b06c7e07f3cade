package handler_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	"github.com/thenoobgamer12/margawellness/internal/clinic/handler"
	"github.com/thenoobgamer12/margawellness/internal/clinic/service"
)

func TestRequireAuth(t *testing.T) {
	tokens := service.NewTokenService("test-secret", 60)

	app := newTestApp()
	app.Get("/protected", handler.RequireAuth(tokens), func(c *fiber.Ctx) error {
		claims := handler.ClaimsFromContext(c)
		require.NotNil(t, claims)
		return c.JSON(fiber.Map{"user_id": claims.UserID, "role": claims.Role.String()})
	})

	t.Run("valid token passes claims through", func(t *testing.T) {
		user := &domain.User{ID: "u1", Username: "admin", Role: domain.RoleAdmin}
		token, _, err := tokens.Issue(user)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("missing header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Basic dXNlcjpwYXNz")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer not.a.token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := service.NewTokenService("other-secret", 60)
		token, _, err := other.Issue(&domain.User{ID: "u1", Username: "admin", Role: domain.RoleAdmin})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
