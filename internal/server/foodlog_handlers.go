package server

import (
	"caltrack/internal/models"
	"caltrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateFoodLogRequest wraps a food entry create payload in a data envelope,
// matching what the previous backend accepted.
type CreateFoodLogRequest struct {
	Data struct {
		Name     string `json:"name"`
		Calories int    `json:"calories"`
		MealType string `json:"mealType"`
	} `json:"data"`
}

// ListFoodLogs returns the caller's food entries, oldest first
func (s *Server) ListFoodLogs(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	logs, err := s.logService.ListFood(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(logs)
}

// GetFoodLog returns a single food entry owned by the caller
func (s *Server) GetFoodLog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	entry, err := s.logService.GetFood(c.UserContext(), userID, c.Params("documentId"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(entry)
}

// CreateFoodLog creates a food entry for the caller
func (s *Server) CreateFoodLog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	var req CreateFoodLogRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.logService.CreateFood(c.UserContext(), service.CreateFoodInput{
		UserID:   userID,
		Name:     req.Data.Name,
		Calories: req.Data.Calories,
		MealType: req.Data.MealType,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": entry})
}

// DeleteFoodLog deletes a food entry owned by the caller
func (s *Server) DeleteFoodLog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	if err := s.logService.DeleteFood(c.UserContext(), userID, c.Params("documentId")); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
