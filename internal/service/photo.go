package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pageza/larder/backend/config"
	"github.com/pageza/larder/backend/internal/apperror"
)

// MaxPhotoSize is the largest accepted recipe photo upload.
const MaxPhotoSize = 10 << 20

const photoKeyPrefix = "recipes/"

// ObjectPutter is the subset of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3PhotoStore uploads recipe photos to a bucket and returns their URL.
type S3PhotoStore struct {
	client ObjectPutter
	bucket string
	urlFor func(key string) string
}

// NewS3PhotoStore creates a photo store backed by the configured bucket.
func NewS3PhotoStore(cfg *config.S3Config) *S3PhotoStore {
	return &S3PhotoStore{
		client: cfg.Client,
		bucket: cfg.BucketName,
		urlFor: cfg.ObjectURL,
	}
}

// ValidatePhoto accepts image content types up to MaxPhotoSize.
func ValidatePhoto(contentType string, size int64) error {
	fields := apperror.FieldErrors{}
	if !strings.HasPrefix(contentType, "image/") {
		fields.Add("photo", "upload a valid image")
	}
	if size > MaxPhotoSize {
		fields.Add("photo", "photo must be 10 MiB or smaller")
	}
	if len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}

// Upload stores body under a fresh key that keeps the file extension.
func (s *S3PhotoStore) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	if err := ValidatePhoto(contentType, size); err != nil {
		return "", err
	}

	key := photoKeyPrefix + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to upload photo", "bucket", s.bucket, "key", key, "error", err)
		return "", apperror.Wrap(apperror.CodeInternal, "failed to upload photo", err)
	}

	return s.urlFor(key), nil
}
