// Package blob stores uploaded cover images in an external object store.
// Posts reference covers by URL only; nothing is served from this process.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp" // register WebP decoder

	"folio/internal/models"
	"folio/internal/slug"
)

// MaxUploadSize caps cover uploads at 10MB.
const MaxUploadSize = 10 * 1024 * 1024

// Uploader stores a blob under the given key and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// CoverKey builds the object key for a post cover. The timestamp prefix
// keeps keys unique when a slug is re-uploaded.
func CoverKey(postSlug string, now time.Time) string {
	return fmt.Sprintf("posts/%d-%s", now.UnixMilli(), slug.Normalize(postSlug))
}

// ValidateImage rejects uploads that are too large, carry a non-image MIME
// type, or do not decode as an image header.
func ValidateImage(content []byte) error {
	if len(content) > MaxUploadSize {
		return models.NewValidationError(fmt.Sprintf("Cover too large (max %dMB)", MaxUploadSize/(1024*1024)))
	}

	detected := http.DetectContentType(content)
	switch detected {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
	default:
		return models.NewValidationError("Cover must be a JPEG, PNG, GIF or WebP image")
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(content)); err != nil {
		return models.NewValidationError("Invalid image file")
	}
	return nil
}
