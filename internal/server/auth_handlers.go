package server

import (
	"strconv"
	"strings"
	"time"

	"caltrack/internal/middleware"
	"caltrack/internal/models"
	"caltrack/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest is the payload for POST /api/auth/local/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /api/auth/local. The identifier is
// an email address or a username.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// AuthResponse is the success body for both auth endpoints.
type AuthResponse struct {
	JWT  string       `json:"jwt"`
	User *models.User `json:"user"`
}

// Register handles user registration
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to hash password", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return respondServiceError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to generate token", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return c.Status(fiber.StatusOK).JSON(AuthResponse{JWT: token, User: user})
}

// Login handles user authentication
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Identifier = strings.TrimSpace(req.Identifier)
	if req.Identifier == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Identifier and password are required"))
	}

	// The identifier may be an email or a username; try email first.
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Identifier))
	if err != nil {
		return respondServiceError(c, err)
	}
	if user == nil {
		user, err = s.userRepo.GetByUsername(ctx, req.Identifier)
		if err != nil {
			return respondServiceError(c, err)
		}
	}

	// Same message for unknown identifier and bad password so the endpoint
	// does not leak which accounts exist.
	if user == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid identifier or password"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid identifier or password"))
	}

	token, err := s.generateToken(user)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to generate token", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return c.Status(fiber.StatusOK).JSON(AuthResponse{JWT: token, User: user})
}

// generateToken creates a signed JWT for the user
func (s *Server) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(user.ID), 10),
		"iss": "caltrack-api",
		"aud": "caltrack-client",
		"iat": now.Unix(),
		"exp": now.Add(7 * 24 * time.Hour).Unix(),
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
