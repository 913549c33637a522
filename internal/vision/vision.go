// Package vision talks to the external food-recognition service. The
// service is an opaque collaborator: it receives an image and returns a
// meal name and calorie estimate, or fails.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"caltrack/internal/observability"
)

// Result is the collaborator's answer for one image.
type Result struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// Analyzer extracts a meal name and calorie count from an image.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte, contentType string) (*Result, error)
}

// HTTPAnalyzer is the production Analyzer: it forwards the image to the
// vision service over HTTP as a multipart upload.
type HTTPAnalyzer struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewHTTPAnalyzer returns an analyzer pointed at baseURL.
func NewHTTPAnalyzer(baseURL, apiKey string) *HTTPAnalyzer {
	return &HTTPAnalyzer{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *HTTPAnalyzer) Analyze(ctx context.Context, image []byte, contentType string) (*Result, error) {
	res, err := a.analyze(ctx, image, contentType)
	if err != nil {
		observability.VisionRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	observability.VisionRequests.WithLabelValues("ok").Inc()
	return res, nil
}

func (a *HTTPAnalyzer) analyze(ctx context.Context, image []byte, contentType string) (*Result, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", "upload"+extensionFor(contentType))
	if err != nil {
		return nil, fmt.Errorf("build vision payload: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("build vision payload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build vision payload: %w", err)
	}

	url := strings.TrimRight(a.BaseURL, "/") + "/analyze"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create vision request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if a.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.APIKey)
	}

	httpClient := a.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute vision request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read vision response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("vision request failed with status %d", resp.StatusCode)
	}

	var parsed Result
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode vision response: %w", err)
	}
	if strings.TrimSpace(parsed.Name) == "" || parsed.Calories <= 0 {
		return nil, fmt.Errorf("vision response missing name or calories")
	}
	return &parsed, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
