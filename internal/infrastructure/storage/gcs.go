package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/inkwell/blog-api/internal/core/domain"
)

const (
	defaultTimeout = 30 * time.Second

	// downloadTokenKey is the object metadata key Firebase uses for
	// unauthenticated download tokens.
	downloadTokenKey = "firebaseStorageDownloadTokens"
	downloadBaseURL  = "https://firebasestorage.googleapis.com/v0/b/"
)

// Config captures the settings for the Firebase Storage bucket.
type Config struct {
	Bucket          string
	CredentialsFile string
}

// Connect creates a Cloud Storage client. Without a credentials file the
// client falls back to application default credentials.
func Connect(ctx context.Context, cfg Config) (*gcs.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return client, nil
}

// BucketStore implements ports.ObjectStore on a Firebase Storage bucket.
// Every written object gets a download token so its URL is publicly
// resolvable without signing.
type BucketStore struct {
	bucket   *gcs.BucketHandle
	name     string
	newToken func() string
}

func NewBucketStore(client *gcs.Client, bucket string) *BucketStore {
	return &BucketStore{
		bucket:   client.Bucket(bucket),
		name:     bucket,
		newToken: uuid.NewString,
	}
}

func (s *BucketStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	token := s.newToken()
	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{downloadTokenKey: token}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	return downloadURL(s.name, key, token), nil
}

func (s *BucketStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	r, err := s.bucket.Object(key).NewReader(ctx)
	if err != nil {
		return nil, mapObjectError(key, "read", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return data, nil
}

func (s *BucketStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := s.bucket.Object(key).Delete(ctx); err != nil {
		return mapObjectError(key, "delete", err)
	}
	return nil
}

// URL rebuilds the download URL of an existing object from its stored token.
func (s *BucketStore) URL(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	attrs, err := s.bucket.Object(key).Attrs(ctx)
	if err != nil {
		return "", mapObjectError(key, "stat", err)
	}
	return downloadURL(s.name, key, attrs.Metadata[downloadTokenKey]), nil
}

// Ping checks that the bucket is reachable with the configured credentials.
func (s *BucketStore) Ping(ctx context.Context) error {
	if _, err := s.bucket.Attrs(ctx); err != nil {
		return fmt.Errorf("bucket %s: %w", s.name, err)
	}
	return nil
}

func mapObjectError(key, op string, err error) error {
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return domain.ErrObjectNotFound
	}
	return fmt.Errorf("%s object %s: %w", op, key, err)
}

// downloadURL builds the Firebase download URL. The object path is escaped
// as a single segment, so "/" becomes "%2F".
func downloadURL(bucket, key, token string) string {
	u := downloadBaseURL + bucket + "/o/" + url.PathEscape(key) + "?alt=media"
	if token != "" {
		u += "&token=" + url.QueryEscape(token)
	}
	return u
}
