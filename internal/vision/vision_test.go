package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPAnalyzerSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "upload.png", header.Filename)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Result{Name: "Pasta", Calories: 420})
	}))
	defer server.Close()

	a := NewHTTPAnalyzer(server.URL, "test-key")
	result, err := a.Analyze(context.Background(), []byte("png-bytes"), "image/png")

	require.NoError(t, err)
	assert.Equal(t, "Pasta", result.Name)
	assert.Equal(t, 420, result.Calories)
}

func TestHTTPAnalyzerUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	a := NewHTTPAnalyzer(server.URL, "")
	_, err := a.Analyze(context.Background(), []byte("bytes"), "image/jpeg")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestHTTPAnalyzerRejectsIncompleteResult(t *testing.T) {
	tests := []struct {
		name string
		body Result
	}{
		{"Missing Name", Result{Calories: 200}},
		{"Zero Calories", Result{Name: "Dal"}},
		{"Negative Calories", Result{Name: "Dal", Calories: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(tt.body)
			}))
			defer server.Close()

			a := NewHTTPAnalyzer(server.URL, "")
			_, err := a.Analyze(context.Background(), []byte("bytes"), "image/jpeg")
			assert.Error(t, err)
		})
	}
}

func TestSniffImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))

	mime, err := SniffImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	_, err = SniffImage([]byte("not an image"))
	assert.Error(t, err)

	_, err = SniffImage(nil)
	assert.Error(t, err)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".gif", extensionFor("image/gif"))
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".jpg", extensionFor("application/octet-stream"))
}
