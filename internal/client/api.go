// Package client is the Go client for the calorie tracking API plus the
// session and log store an application front end builds on. The API type
// is a thin typed HTTP wrapper; Store layers session state, cached logs
// and user-facing failure handling on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"
)

// User is an account as the API returns it. Age, Weight and Goal are nil
// until the user completes onboarding.
type User struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Age      *int     `json:"age"`
	Weight   *float64 `json:"weight"`
	Goal     *string  `json:"goal"`
}

// OnboardingCompleted reports whether all three onboarding fields are set.
func (u *User) OnboardingCompleted() bool {
	return u != nil && u.Age != nil && u.Weight != nil && u.Goal != nil
}

// Credentials carries a signup or login request.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FoodEntry is one logged meal.
type FoodEntry struct {
	ID         uint      `json:"id"`
	DocumentID string    `json:"documentId"`
	Name       string    `json:"name"`
	Calories   int       `json:"calories"`
	MealType   string    `json:"mealType"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ActivityEntry is one logged activity.
type ActivityEntry struct {
	ID              uint      `json:"id"`
	DocumentID      string    `json:"documentId"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	CaloriesBurned  int       `json:"caloriesBurned"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AuthResponse is the body of a successful signup or login.
type AuthResponse struct {
	JWT  string `json:"jwt"`
	User *User  `json:"user"`
}

// AnalysisResult is the vision service's answer for an uploaded image.
type AnalysisResult struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// APIError is a structured error returned by the server. Message is the
// user-facing text from the server's error envelope.
type APIError struct {
	Status  int
	Name    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Status, e.Message)
}

// errorEnvelope mirrors the server's error body.
type errorEnvelope struct {
	Error struct {
		Status  int    `json:"status"`
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

// dataEnvelope wraps create request and response bodies.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// API is a typed HTTP client for the server. The auth header is held per
// client instance so independent clients never share credentials.
type API struct {
	baseURL    string
	httpClient *http.Client

	mu         sync.RWMutex
	authHeader string
}

// NewAPI returns a client for the server at baseURL. A nil httpClient gets
// a default with a sane timeout.
func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SetAuthToken installs token as the default bearer credential for all
// subsequent requests. An empty token clears it.
func (a *API) SetAuthToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if token == "" {
		a.authHeader = ""
		return
	}
	a.authHeader = "Bearer " + token
}

// AuthHeader returns the currently installed Authorization header value.
func (a *API) AuthHeader() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authHeader
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h := a.AuthHeader(); h != "" {
		req.Header.Set("Authorization", h)
	}

	return a.send(req, out)
}

func (a *API) send(req *http.Request, out any) error {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope errorEnvelope
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Error.Message != "" {
			return &APIError{
				Status:  envelope.Error.Status,
				Name:    envelope.Error.Name,
				Message: envelope.Error.Message,
			}
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Register creates a new account and returns the user and token.
func (a *API) Register(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.do(ctx, http.MethodPost, "/api/auth/local/register", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates with an email-or-username identifier and a password.
func (a *API) Login(ctx context.Context, identifier, password string) (*AuthResponse, error) {
	payload := map[string]string{
		"identifier": identifier,
		"password":   password,
	}
	var out AuthResponse
	if err := a.do(ctx, http.MethodPost, "/api/auth/local", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the authenticated user's profile.
func (a *API) Me(ctx context.Context) (*User, error) {
	var out User
	if err := a.do(ctx, http.MethodGet, "/api/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile carries a PUT /api/users/me payload. Nil fields are omitted
// and left unchanged on the server.
type UpdateProfile struct {
	Username string   `json:"username,omitempty"`
	Age      *int     `json:"age,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
	Goal     *string  `json:"goal,omitempty"`
}

// UpdateMe updates the authenticated user's profile.
func (a *API) UpdateMe(ctx context.Context, update UpdateProfile) (*User, error) {
	var out User
	if err := a.do(ctx, http.MethodPut, "/api/users/me", update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FoodLogs returns the caller's food entries, oldest first.
func (a *API) FoodLogs(ctx context.Context) ([]FoodEntry, error) {
	var out []FoodEntry
	if err := a.do(ctx, http.MethodGet, "/api/food-logs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFoodLog creates a food entry and returns the stored record.
func (a *API) CreateFoodLog(ctx context.Context, name string, calories int, mealType string) (*FoodEntry, error) {
	payload := dataEnvelope[map[string]any]{Data: map[string]any{
		"name":     name,
		"calories": calories,
		"mealType": mealType,
	}}
	var out dataEnvelope[FoodEntry]
	if err := a.do(ctx, http.MethodPost, "/api/food-logs", payload, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteFoodLog deletes a food entry by its document ID.
func (a *API) DeleteFoodLog(ctx context.Context, documentID string) error {
	return a.do(ctx, http.MethodDelete, "/api/food-logs/"+documentID, nil, nil)
}

// ActivityLogs returns the caller's activity entries, oldest first.
func (a *API) ActivityLogs(ctx context.Context) ([]ActivityEntry, error) {
	var out []ActivityEntry
	if err := a.do(ctx, http.MethodGet, "/api/activity-logs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateActivityLog creates an activity entry and returns the stored record.
func (a *API) CreateActivityLog(ctx context.Context, name string, durationMinutes, caloriesBurned int) (*ActivityEntry, error) {
	payload := dataEnvelope[map[string]any]{Data: map[string]any{
		"name":            name,
		"durationMinutes": durationMinutes,
		"caloriesBurned":  caloriesBurned,
	}}
	var out dataEnvelope[ActivityEntry]
	if err := a.do(ctx, http.MethodPost, "/api/activity-logs", payload, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteActivityLog deletes an activity entry by its document ID.
func (a *API) DeleteActivityLog(ctx context.Context, documentID string) error {
	return a.do(ctx, http.MethodDelete, "/api/activity-logs/"+documentID, nil, nil)
}

// AnalyzeImage uploads an image for food recognition.
func (a *API) AnalyzeImage(ctx context.Context, image []byte, filename string) (*AnalysisResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/image-analysis", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if h := a.AuthHeader(); h != "" {
		req.Header.Set("Authorization", h)
	}

	var out struct {
		Success bool           `json:"success"`
		Result  AnalysisResult `json:"result"`
	}
	if err := a.send(req, &out); err != nil {
		return nil, err
	}
	return &out.Result, nil
}
