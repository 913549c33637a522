package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"caltrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, s *Server, username string) (*models.User, string) {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant-hash",
	}
	require.NoError(t, s.db.Create(user).Error)
	token, err := s.generateToken(user)
	require.NoError(t, err)
	return user, token
}

func authedRequest(t *testing.T, method, path, token string, body any) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestFoodLogLifecycle(t *testing.T) {
	s, app := setupTestServer(t, nil)
	_, token := createTestUser(t, s, "alice")

	// Empty list to start
	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/food-logs", token, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []models.FoodLog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Empty(t, list)

	// Create
	createBody := map[string]any{"data": map[string]any{
		"name": "Rice", "calories": 200, "mealType": "lunch",
	}}
	resp, err = app.Test(authedRequest(t, http.MethodPost, "/api/food-logs", token, createBody))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created struct {
		Data models.FoodLog `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Rice", created.Data.Name)
	assert.Equal(t, 200, created.Data.Calories)
	assert.NotEmpty(t, created.Data.DocumentID)

	// List now has the entry
	resp, err = app.Test(authedRequest(t, http.MethodGet, "/api/food-logs", token, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, created.Data.DocumentID, list[0].DocumentID)

	// Get by document ID
	resp, err = app.Test(authedRequest(t, http.MethodGet, "/api/food-logs/"+created.Data.DocumentID, token, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Delete
	resp, err = app.Test(authedRequest(t, http.MethodDelete, "/api/food-logs/"+created.Data.DocumentID, token, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Gone
	resp, err = app.Test(authedRequest(t, http.MethodDelete, "/api/food-logs/"+created.Data.DocumentID, token, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFoodLogOwnershipIsolation(t *testing.T) {
	s, app := setupTestServer(t, nil)
	_, aliceToken := createTestUser(t, s, "alice")
	_, bobToken := createTestUser(t, s, "bob")

	createBody := map[string]any{"data": map[string]any{
		"name": "Secret Snack", "calories": 50, "mealType": "snack",
	}}
	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/food-logs", aliceToken, createBody))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created struct {
		Data models.FoodLog `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	// Bob cannot see, fetch or delete Alice's entry
	resp, err = app.Test(authedRequest(t, http.MethodGet, "/api/food-logs", bobToken, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var list []models.FoodLog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Empty(t, list)

	resp, err = app.Test(authedRequest(t, http.MethodGet, "/api/food-logs/"+created.Data.DocumentID, bobToken, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	envelope := decodeError(t, resp)
	assert.Equal(t, "Not found or not yours", envelope.Error.Message)

	resp, err = app.Test(authedRequest(t, http.MethodDelete, "/api/food-logs/"+created.Data.DocumentID, bobToken, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateFoodLogValidation(t *testing.T) {
	s, app := setupTestServer(t, nil)
	_, token := createTestUser(t, s, "alice")

	tests := []struct {
		name string
		data map[string]any
	}{
		{"Missing Name", map[string]any{"calories": 200, "mealType": "lunch"}},
		{"Zero Calories", map[string]any{"name": "Rice", "calories": 0, "mealType": "lunch"}},
		{"Negative Calories", map[string]any{"name": "Rice", "calories": -5, "mealType": "lunch"}},
		{"Bad Meal Type", map[string]any{"name": "Rice", "calories": 200, "mealType": "brunch"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := map[string]any{"data": tt.data}
			resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/food-logs", token, body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestFoodLogsRequireAuth(t *testing.T) {
	_, app := setupTestServer(t, nil)

	for _, path := range []string{"/api/food-logs", "/api/activity-logs", "/api/users/me"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, fmt.Sprintf("path %s", path))
	}
}

func TestActivityLogLifecycle(t *testing.T) {
	s, app := setupTestServer(t, nil)
	_, token := createTestUser(t, s, "alice")

	createBody := map[string]any{"data": map[string]any{
		"name": "Running", "durationMinutes": 30, "caloriesBurned": 250,
	}}
	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/activity-logs", token, createBody))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created struct {
		Data models.ActivityLog `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Running", created.Data.Name)
	assert.Equal(t, 30, created.Data.DurationMinutes)
	assert.Equal(t, 250, created.Data.CaloriesBurned)

	resp, err = app.Test(authedRequest(t, http.MethodGet, "/api/activity-logs", token, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var list []models.ActivityLog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)

	resp, err = app.Test(authedRequest(t, http.MethodDelete, "/api/activity-logs/"+created.Data.DocumentID, token, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCreateActivityLogValidation(t *testing.T) {
	s, app := setupTestServer(t, nil)
	_, token := createTestUser(t, s, "alice")

	body := map[string]any{"data": map[string]any{
		"name": "Running", "durationMinutes": 0, "caloriesBurned": 250,
	}}
	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/activity-logs", token, body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateMyProfile(t *testing.T) {
	s, app := setupTestServer(t, nil)
	user, token := createTestUser(t, s, "alice")

	age, weight, goal := 28, 64.0, "lose"
	body := map[string]any{"age": age, "weight": weight, "goal": goal}
	resp, err := app.Test(authedRequest(t, http.MethodPut, "/api/users/me", token, body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, user.ID, updated.ID)
	require.NotNil(t, updated.Age)
	assert.Equal(t, age, *updated.Age)
	assert.True(t, updated.OnboardingCompleted())

	// Invalid goal is rejected
	resp, err = app.Test(authedRequest(t, http.MethodPut, "/api/users/me", token, map[string]any{"goal": "bulk"}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
