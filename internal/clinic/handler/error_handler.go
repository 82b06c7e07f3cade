package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
)

// NewErrorHandler returns the app-level fiber error handler. It maps the core
// error taxonomy to HTTP status codes, logs unexpected errors, and never
// leaks internal detail in a 500 body.
func NewErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		switch {
		case errors.Is(err, apperrors.ErrInvalidRequest):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			// The same body whether the account is missing or the password is
			// wrong; nothing to enumerate here.
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid credentials"})
		case errors.Is(err, apperrors.ErrUnauthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		case errors.Is(err, apperrors.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "username already exists"})
		case errors.Is(err, apperrors.ErrSlotConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "appointment slot already booked"})
		}

		log.Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("unhandled error")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
