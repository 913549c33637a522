package server

import (
	"caltrack/internal/models"
	"caltrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateActivityLogRequest wraps an activity entry create payload in a data
// envelope, matching what the previous backend accepted.
type CreateActivityLogRequest struct {
	Data struct {
		Name            string `json:"name"`
		DurationMinutes int    `json:"durationMinutes"`
		CaloriesBurned  int    `json:"caloriesBurned"`
	} `json:"data"`
}

// ListActivityLogs returns the caller's activity entries, oldest first
func (s *Server) ListActivityLogs(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	logs, err := s.logService.ListActivities(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(logs)
}

// GetActivityLog returns a single activity entry owned by the caller
func (s *Server) GetActivityLog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	entry, err := s.logService.GetActivity(c.UserContext(), userID, c.Params("documentId"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(entry)
}

// CreateActivityLog creates an activity entry for the caller
func (s *Server) CreateActivityLog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	var req CreateActivityLogRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.logService.CreateActivity(c.UserContext(), service.CreateActivityInput{
		UserID:          userID,
		Name:            req.Data.Name,
		DurationMinutes: req.Data.DurationMinutes,
		CaloriesBurned:  req.Data.CaloriesBurned,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": entry})
}

// DeleteActivityLog deletes an activity entry owned by the caller
func (s *Server) DeleteActivityLog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	if err := s.logService.DeleteActivity(c.UserContext(), userID, c.Params("documentId")); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
