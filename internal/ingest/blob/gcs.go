package blob

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// GCSStore uploads attachments to a Google Cloud Storage bucket.
type GCSStore struct {
	bucket *storage.BucketHandle
}

// NewGCS creates a store over an existing bucket handle.
func NewGCS(bucket *storage.BucketHandle) *GCSStore {
	return &GCSStore{bucket: bucket}
}

// OpenGCS dials GCS with ambient credentials and returns a store over the
// named bucket.
func OpenGCS(ctx context.Context, bucketName string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return NewGCS(client.Bucket(bucketName)), nil
}

func (s *GCSStore) Put(ctx context.Context, key, mediaType string, content []byte) error {
	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = mediaType
	if _, err := w.Write(content); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize object %s: %w", key, err)
	}
	return nil
}
