package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// CreatePostInput is the DTO passed from the transport layer to PostService.
type CreatePostInput struct {
	AuthorID           string
	Title              string
	Content            any
	PreviewImage       string
	PreviewTitle       string
	PreviewDescription string
}

// UpdatePostInput identifies the post, the caller, and the fields to change.
type UpdatePostInput struct {
	ID       string
	CallerID string
	Patch    domain.PostPatch
}

// PostService defines use-case operations for posts.
type PostService interface {
	ListPosts(ctx context.Context, search string) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	CreatePost(ctx context.Context, in CreatePostInput) (*domain.Post, error)
	UpdatePost(ctx context.Context, in UpdatePostInput) error
	DeletePost(ctx context.Context, id, callerID string) error
}
