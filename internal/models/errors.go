package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the envelope written for every non-2xx response. The
// shape mirrors what the original content-management backend emitted, so
// clients extract messages from error.message.
type ErrorResponse struct {
	Data  any          `json:"data"`
	Error ErrorPayload `json:"error"`
}

// ErrorPayload carries the structured error inside the envelope.
type ErrorPayload struct {
	Status  int    `json:"status"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Status  int
	Name    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Name:    "ValidationError",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusUnauthorized,
		Name:    "UnauthorizedError",
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusForbidden,
		Name:    "ForbiddenError",
		Message: message,
	}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusNotFound,
		Name:    "NotFoundError",
		Message: message,
	}
}

func NewBadGatewayError(message string, err error) *AppError {
	return &AppError{
		Status:  fiber.StatusBadGateway,
		Name:    "BadGatewayError",
		Message: message,
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Status:  fiber.StatusInternalServerError,
		Name:    "InternalServerError",
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError writes a standardized error envelope. The status of an
// AppError wins over the status argument so repositories and services can
// pick the final code.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	payload := ErrorPayload{
		Status:  status,
		Name:    "ApplicationError",
		Message: err.Error(),
	}

	if appErr, ok := err.(*AppError); ok {
		payload.Status = appErr.Status
		payload.Name = appErr.Name
		payload.Message = appErr.Message
		if appErr.Err != nil {
			payload.Details = appErr.Err.Error()
		}
	}

	return c.Status(payload.Status).JSON(ErrorResponse{Data: nil, Error: payload})
}
