package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"caltrack/internal/config"
	"caltrack/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	var envelope models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(repo *MockUserRepository)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "Password123",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*models.User).ID = 1
					}).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Duplicate",
			body: map[string]string{
				"username": "testuser",
				"email":    "exists@example.com",
				"password": "Password123",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Create", mock.Anything, mock.Anything).
					Return(models.NewValidationError("Email or Username are already taken"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Email or Username are already taken",
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "short",
			},
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Bad Email",
			body: map[string]string{
				"username": "testuser",
				"email":    "not-an-email",
				"password": "Password123",
			},
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			s := &Server{
				config:   &config.Config{JWTSecret: "test_secret"},
				userRepo: mockRepo,
			}
			app.Post("/api/auth/local/register", s.Register)

			tt.mockSetup(mockRepo)
			resp := postJSON(t, app, "/api/auth/local/register", tt.body)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == http.StatusOK {
				var body AuthResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.NotEmpty(t, body.JWT)
				assert.Equal(t, "testuser", body.User.Username)
			} else if tt.expectedError != "" {
				envelope := decodeError(t, resp)
				assert.Equal(t, tt.expectedError, envelope.Error.Message)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	require.NoError(t, err)
	existing := &models.User{
		ID:       1,
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashed),
	}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(repo *MockUserRepository)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success With Email",
			body: map[string]string{
				"identifier": "test@example.com",
				"password":   "Password123",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByEmail", mock.Anything, "test@example.com").Return(existing, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Success With Username",
			body: map[string]string{
				"identifier": "testuser",
				"password":   "Password123",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByEmail", mock.Anything, "testuser").Return(nil, nil)
				repo.On("GetByUsername", mock.Anything, "testuser").Return(existing, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Unknown Identifier",
			body: map[string]string{
				"identifier": "ghost@example.com",
				"password":   "Password123",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
				repo.On("GetByUsername", mock.Anything, "ghost@example.com").Return(nil, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid identifier or password",
		},
		{
			name: "Wrong Password",
			body: map[string]string{
				"identifier": "test@example.com",
				"password":   "WrongPassword1",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByEmail", mock.Anything, "test@example.com").Return(existing, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid identifier or password",
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"identifier": "",
				"password":   "",
			},
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			s := &Server{
				config:   &config.Config{JWTSecret: "test_secret"},
				userRepo: mockRepo,
			}
			app.Post("/api/auth/local", s.Login)

			tt.mockSetup(mockRepo)
			resp := postJSON(t, app, "/api/auth/local", tt.body)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == http.StatusOK {
				var body AuthResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.NotEmpty(t, body.JWT)
				assert.Equal(t, existing.Email, body.User.Email)
			} else if tt.expectedError != "" {
				envelope := decodeError(t, resp)
				assert.Equal(t, tt.expectedError, envelope.Error.Message)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthRequiredValidatesClaims(t *testing.T) {
	s := &Server{config: &config.Config{JWTSecret: "test_secret"}}

	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	validToken, err := s.generateToken(&models.User{ID: 42})
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"Valid Token", "Bearer " + validToken, http.StatusOK},
		{"Missing Header", "", http.StatusUnauthorized},
		{"Malformed Header", "Token abc", http.StatusUnauthorized},
		{"Garbage Token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAuthRequiredRejectsForeignIssuer(t *testing.T) {
	s := &Server{config: &config.Config{JWTSecret: "test_secret"}}

	// Token signed with the right secret but the wrong issuer
	foreign := buildToken(t, "test_secret", map[string]any{
		"sub": "1", "iss": "someone-else", "aud": "caltrack-client",
	})

	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
