package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// ImageStorage serves the catalog's equipment photos. Exercises carry an
// object key (Exercise.ImageName); clients fetch the image through a
// short-lived presigned URL so the bucket stays private.
type ImageStorage interface {
	// GenerateImageURL creates a temporary GET URL for an equipment image.
	GenerateImageURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// GenerateUploadURL creates a temporary PUT URL for replacing an
	// equipment image (admin tooling uploads directly to the bucket).
	GenerateUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// DeleteImage removes an equipment image from the bucket.
	DeleteImage(ctx context.Context, objectKey string) error
}
