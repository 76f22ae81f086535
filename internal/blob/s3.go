package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"folio/internal/config"
	"folio/internal/middleware"
)

// S3Uploader stores covers in an S3-compatible bucket.
type S3Uploader struct {
	uploader *s3manager.Uploader
	bucket   string
	baseURL  string
}

// NewS3Uploader builds an uploader from the blob section of the config.
// A non-empty endpoint switches to path-style addressing so MinIO and
// other S3-compatible stores work.
func NewS3Uploader(cfg *config.Config) (*S3Uploader, error) {
	awsCfg := aws.NewConfig().WithRegion(cfg.BlobRegion)
	if cfg.BlobEndpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.BlobEndpoint).WithS3ForcePathStyle(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob session: %w", err)
	}

	return &S3Uploader{
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.BlobBucket,
		baseURL:  strings.TrimRight(cfg.BlobBaseURL, "/"),
	}, nil
}

// Upload stores the body under key and returns the public URL of the object.
func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	result, err := u.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "Blob upload failed", "key", key, "error", err)
		return "", fmt.Errorf("failed to upload blob %s: %w", key, err)
	}

	if u.baseURL != "" {
		return fmt.Sprintf("%s/%s", u.baseURL, key), nil
	}
	return result.Location, nil
}
