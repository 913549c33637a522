package vision

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/webp" // register WebP decoder
)

// SniffImage verifies that data decodes as a supported image and returns
// its MIME type. Uploads are forwarded to the vision service, so anything
// that is not a real image is rejected before leaving the process.
func SniffImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("not a supported image: %w", err)
	}
	switch format {
	case "jpeg":
		return "image/jpeg", nil
	case "png":
		return "image/png", nil
	case "gif":
		return "image/gif", nil
	case "webp":
		return "image/webp", nil
	}
	return "", fmt.Errorf("unsupported image format %q", format)
}
