package server

import (
	"context"
	"testing"
	"time"

	"caltrack/internal/config"
	"caltrack/internal/database"
	"caltrack/internal/vision"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// stubAnalyzer returns a fixed result or error.
type stubAnalyzer struct {
	result *vision.Result
	err    error
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ []byte, _ string) (*vision.Result, error) {
	return s.result, s.err
}

func buildToken(t *testing.T, secret string, claims map[string]any) string {
	t.Helper()
	mapClaims := jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	for k, v := range claims {
		mapClaims[k] = v
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// setupTestServer builds a Server against an in-memory sqlite database with
// the full route table mounted, suitable for end-to-end handler tests.
func setupTestServer(t *testing.T, analyzer vision.Analyzer) (*Server, *fiber.App) {
	t.Helper()

	cfg := &config.Config{
		JWTSecret: "test_secret",
		Port:      "0",
		DBDriver:  "sqlite",
		DBName:    ":memory:",
		Env:       "test",
	}

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if analyzer == nil {
		analyzer = &stubAnalyzer{result: &vision.Result{Name: "Pasta", Calories: 420}}
	}

	s, err := NewServerWithDeps(cfg, db, nil, analyzer)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}
