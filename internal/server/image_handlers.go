package server

import (
	"io"

	"caltrack/internal/middleware"
	"caltrack/internal/models"
	"caltrack/internal/vision"

	"github.com/gofiber/fiber/v2"
)

// AnalyzeImage accepts a multipart image upload and returns the vision
// service's meal name and calorie estimate.
func (s *Server) AnalyzeImage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No image uploaded"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No image uploaded"))
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No image uploaded"))
	}

	// Reject non-image payloads before calling out to the vision service.
	contentType, err := vision.SniffImage(data)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Uploaded file is not a supported image"))
	}

	result, err := s.analyzer.Analyze(ctx, data, contentType)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "image analysis failed", "error", err)
		return models.RespondWithError(c, fiber.StatusBadGateway,
			models.NewBadGatewayError("Analysis Failed", err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"result":  result,
	})
}
