package storage

import (
	"errors"
	"fmt"
	"testing"

	gcs "cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"

	"github.com/inkwell/blog-api/internal/core/domain"
)

func TestDownloadURL(t *testing.T) {
	got := downloadURL("blog.appspot.com", "files/uploads/images/draft/abc.webp", "tok-1")
	assert.Equal(t,
		"https://firebasestorage.googleapis.com/v0/b/blog.appspot.com/o/files%2Fuploads%2Fimages%2Fdraft%2Fabc.webp?alt=media&token=tok-1",
		got)

	assert.Equal(t,
		"https://firebasestorage.googleapis.com/v0/b/bkt/o/a.webp?alt=media",
		downloadURL("bkt", "a.webp", ""))
}

func TestMapObjectError(t *testing.T) {
	assert.ErrorIs(t, mapObjectError("k", "read", gcs.ErrObjectNotExist), domain.ErrObjectNotFound)
	assert.ErrorIs(t, mapObjectError("k", "read", fmt.Errorf("wrapped: %w", gcs.ErrObjectNotExist)), domain.ErrObjectNotFound)

	other := errors.New("permission denied")
	err := mapObjectError("k", "delete", other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, domain.ErrObjectNotFound)
}
