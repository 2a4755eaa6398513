package b2util

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/best-deal/inventory/config"
	"gopkg.in/kothar/go-backblaze.v0"
)

const (
	maxAttempts    = 3
	defaultBackoff = time.Second
	contentType    = "image/webp"
)

// bucket is the part of *backblaze.Bucket the uploader needs.
type bucket interface {
	UploadTypedFile(path, contentType string, meta map[string]string, file io.Reader) (*backblaze.File, error)
}

// Uploader writes derivatives to a B2 bucket, retrying failed uploads with a
// linear backoff.
type Uploader struct {
	bucket  bucket
	prefix  string
	backoff time.Duration
}

// NewUploader authenticates with the credentials from config and opens the
// configured bucket. Object names are placed under prefix.
func NewUploader(prefix string) (*Uploader, error) {
	if !config.B2Configured() {
		return nil, fmt.Errorf("B2 credentials not set in env vars")
	}

	b2, err := backblaze.NewB2(backblaze.Credentials{
		AccountID:      config.B2MasterKeyID,
		ApplicationKey: config.B2AppKey,
		KeyID:          config.B2KeyID,
	})
	if err != nil {
		return nil, fmt.Errorf("B2 auth error: %w", err)
	}

	b, err := b2.Bucket(config.B2BucketName)
	if err != nil {
		return nil, fmt.Errorf("B2 bucket error: %w", err)
	}
	if b == nil {
		return nil, fmt.Errorf("B2 bucket %q not found", config.B2BucketName)
	}
	log.Printf("[b2] Connected to bucket %s", config.B2BucketName)

	return newUploader(b, prefix, defaultBackoff), nil
}

func newUploader(b bucket, prefix string, backoff time.Duration) *Uploader {
	return &Uploader{bucket: b, prefix: prefix, backoff: backoff}
}

// Upload stores data under prefix/name.
func (u *Uploader) Upload(ctx context.Context, name string, data []byte) error {
	key := name
	if u.prefix != "" {
		key = path.Join(u.prefix, name)
	}

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if _, err = u.bucket.UploadTypedFile(key, contentType, nil, bytes.NewReader(data)); err == nil {
			return nil
		}
		if attempt == maxAttempts-1 {
			break
		}

		log.Printf("[b2] upload attempt %d failed for %s: %v, retrying...", attempt+1, key, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * u.backoff):
		}
	}
	return fmt.Errorf("upload %s failed after %d attempts: %w", key, maxAttempts, err)
}
