package handlers

import (
	"errors"

	"github.com/emrekoc/pilates_studio/scheduling"
	"github.com/gofiber/fiber/v2"
)

// schedulingError translates the scheduling error taxonomy into HTTP
// responses. Not-found, validation, conflict and illegal-transition
// failures map to distinct status codes so clients can react without
// parsing messages.
func schedulingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, scheduling.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, scheduling.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, scheduling.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, scheduling.ErrInvalidState):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
