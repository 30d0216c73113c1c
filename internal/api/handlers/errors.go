package handlers

import (
	"errors"

	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{service.ErrTransactionNotFound, fiber.StatusNotFound},
	{service.ErrCategoryNotFound, fiber.StatusNotFound},
	{service.ErrUserNotFound, fiber.StatusNotFound},
	{service.ErrUserExists, fiber.StatusConflict},
	{service.ErrTransactionExists, fiber.StatusConflict},
	{service.ErrCategoryExists, fiber.StatusConflict},
	{service.ErrInvalidSortDirection, fiber.StatusBadRequest},
	{service.ErrInvalidTransactionType, fiber.StatusBadRequest},
	{service.ErrInvalidAmount, fiber.StatusBadRequest},
	{service.ErrInvalidDate, fiber.StatusBadRequest},
	{service.ErrCategoryName, fiber.StatusBadRequest},
	{service.ErrUserEmail, fiber.StatusBadRequest},
}

// respondError maps service errors onto status codes. Anything unrecognised
// is logged and reported as a generic failure.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, failure string) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return c.Status(e.status).JSON(fiber.Map{
				"error": e.err.Error(),
			})
		}
	}

	logger.Error(failure, zap.Error(err), zap.String("path", c.Path()))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": failure,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}
