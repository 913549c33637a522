package server

import (
	"errors"

	"caltrack/internal/middleware"
	"caltrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok
}

// respondServiceError maps service/repository errors onto the error envelope.
// AppError carries its own status; anything else is an internal error.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return models.RespondWithError(c, appErr.Status, appErr)
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled service error", "error", err)
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}
