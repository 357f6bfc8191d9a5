package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// ListPostsFilter narrows a post listing. Results are always newest first.
type ListPostsFilter struct {
	AuthorID string // optional: exact author match
	Search   string // optional: case-insensitive substring of title or content
}

// PostRepository is the post store.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	// FindByID returns domain.ErrPostNotFound for unknown or malformed IDs.
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, filter ListPostsFilter) ([]*domain.Post, error)
	// Update applies patch and bumps updatedAt; domain.ErrPostNotFound if absent.
	Update(ctx context.Context, id string, patch domain.PostPatch) error
	// Delete removes the post; domain.ErrPostNotFound if absent.
	Delete(ctx context.Context, id string) error
}
