// Package storage wraps S3-compatible object storage for catalog images.
// This is part of the platform layer and contains no business logic.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"travelnest_backend/platform/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PresignedURLTTL is how long an upload URL stays valid.
const PresignedURLTTL = 15 * time.Minute

// PresignedUpload is handed to the admin UI: PUT the file to URL, then
// store PublicURL on the package, destination or blog post.
type PresignedUpload struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MinIOStore implements image uploads on MinIO.
type MinIOStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	maxFileSize   int64
	now           func() time.Time
}

// NewMinIOStore creates a store for the catalog image bucket.
func NewMinIOStore(cfg config.MinIOConfig) (*MinIOStore, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	base := cfg.GetMinIOPublicBaseURL()
	if base == "" {
		scheme := "http"
		if cfg.GetMinIOUseSSL() {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.GetMinIOEndpoint(), cfg.GetMinIOBucketCatalogImages())
	}

	return &MinIOStore{
		client:        client,
		bucket:        cfg.GetMinIOBucketCatalogImages(),
		publicBaseURL: strings.TrimRight(base, "/"),
		maxFileSize:   cfg.GetMinIOMaxFileSize(),
		now:           time.Now,
	}, nil
}

// EnsureBucketExists creates the bucket if it doesn't exist.
func (s *MinIOStore) EnsureBucketExists(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}

	return nil
}

// PresignUpload validates the file and returns a presigned PUT URL.
func (s *MinIOStore) PresignUpload(ctx context.Context, folder, fileName, contentType string, sizeBytes int64) (*PresignedUpload, error) {
	if err := ValidateImage(contentType, sizeBytes, s.maxFileSize); err != nil {
		return nil, err
	}

	key := ObjectKey(folder, fileName, uuid.NewString())
	presigned, err := s.client.PresignedPutObject(ctx, s.bucket, key, PresignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned upload URL: %w", err)
	}

	return &PresignedUpload{
		URL:       presigned.String(),
		FileKey:   key,
		PublicURL: s.publicBaseURL + "/" + key,
		ExpiresAt: s.now().Add(PresignedURLTTL),
	}, nil
}

// MaxFileSize is the configured upload limit in bytes.
func (s *MinIOStore) MaxFileSize() int64 {
	return s.maxFileSize
}

// DeleteObject removes an uploaded image.
func (s *MinIOStore) DeleteObject(ctx context.Context, fileKey string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, fileKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", fileKey, err)
	}
	return nil
}

// ObjectKey builds "<folder>/<base>_<suffix[:8]><ext>" with a slug-safe base.
func ObjectKey(folder, fileName, suffix string) string {
	ext := strings.ToLower(path.Ext(fileName))
	base := slugify(strings.TrimSuffix(path.Base(fileName), path.Ext(fileName)))
	if base == "" {
		base = "image"
	}
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return path.Join(slugify(folder), fmt.Sprintf("%s_%s%s", base, suffix, ext))
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
