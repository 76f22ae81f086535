package blob

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage(pngBytes(t)))
}

func TestValidateImageRejectsNonImage(t *testing.T) {
	err := ValidateImage([]byte("plain text pretending to be a cover"))
	assert.Error(t, err)
}

func TestValidateImageRejectsTruncated(t *testing.T) {
	// valid PNG magic bytes but no decodable header
	err := ValidateImage([]byte("\x89PNG\r\n\x1a\n"))
	assert.Error(t, err)
}

func TestValidateImageRejectsOversized(t *testing.T) {
	err := ValidateImage(make([]byte, MaxUploadSize+1))
	assert.Error(t, err)
}

func TestCoverKey(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	assert.Equal(t, "posts/1700000000000-meu-post", CoverKey("Meu Post", at))
}
