package ports

import (
	"context"
	"io"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// ObjectStore is the external blob storage holding image assets.
type ObjectStore interface {
	// Put writes data at key and returns a publicly resolvable URL for it.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Get returns domain.ErrObjectNotFound when key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete returns domain.ErrObjectNotFound when key does not exist.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL of an existing object.
	URL(ctx context.Context, key string) (string, error)
}

// ImageEncoder normalises an uploaded image to the stored encoding.
type ImageEncoder interface {
	Encode(r io.Reader) ([]byte, error)
}

// ImageStateStore records where each asset is in its draft/publish lifecycle.
type ImageStateStore interface {
	// Get returns "" with a nil error when no record exists.
	Get(ctx context.Context, name string) (domain.ImageState, error)
	Set(ctx context.Context, name string, state domain.ImageState) error
}

// CleanupQueue accepts draft deletions that could not be completed inline.
type CleanupQueue interface {
	// Enqueue reports false when the job could not be queued.
	Enqueue(name string) bool
}

// DraftCleaner removes the draft copy of an already published asset.
type DraftCleaner interface {
	RemoveDraft(ctx context.Context, name string) error
}

// UploadImageInput carries an uploaded file.
type UploadImageInput struct {
	Filename string
	Body     io.Reader
}

// ImageService runs the draft → published image pipeline.
type ImageService interface {
	UploadDraft(ctx context.Context, in UploadImageInput) (string, error)
	Publish(ctx context.Context, imageURL string) (string, error)
	DraftCleaner
}
