package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	"github.com/thenoobgamer12/margawellness/internal/clinic/service"
	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
)

const claimsKey = "claims"

// RequireAuth verifies the bearer token and stores the claim set on the
// request context. Role checks happen in the services through the policy
// engine, not here.
func RequireAuth(tokens service.TokenGenerator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return apperrors.ErrUnauthenticated
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return apperrors.ErrUnauthenticated
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			return apperrors.ErrUnauthenticated
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromContext returns the verified claims set by RequireAuth, or nil on
// an unauthenticated request.
func ClaimsFromContext(c *fiber.Ctx) *domain.Claims {
	claims, _ := c.Locals(claimsKey).(*domain.Claims)
	return claims
}
