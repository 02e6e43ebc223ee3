package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"staff-administration/pkg/apperr"
)

// respondError maps an error kind to its HTTP status. The kind prefix is
// stripped from the client-facing message.
func respondError(c *fiber.Ctx, err error) error {
	status := apperr.StatusCode(err)
	msg := err.Error()
	for _, kind := range []error{apperr.ErrValidation, apperr.ErrNotFound, apperr.ErrInvalidState} {
		if errors.Is(err, kind) {
			prefix := kind.Error() + ": "
			if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
				msg = msg[len(prefix):]
			}
			break
		}
	}
	if status == fiber.StatusInternalServerError {
		msg = "Internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
