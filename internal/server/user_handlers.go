package server

import (
	"caltrack/internal/models"
	"caltrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfileRequest is the payload for PUT /api/users/me. Pointer fields
// distinguish "absent" from "zero": an omitted field leaves the stored value
// untouched.
type UpdateProfileRequest struct {
	Username string   `json:"username"`
	Age      *int     `json:"age"`
	Weight   *float64 `json:"weight"`
	Goal     *string  `json:"goal"`
}

// GetMyProfile returns the authenticated user's profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	user, err := s.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateMyProfile updates the authenticated user's profile fields
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   userID,
		Username: req.Username,
		Age:      req.Age,
		Weight:   req.Weight,
		Goal:     req.Goal,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
