package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// PostOptions tunes PostService behaviour.
type PostOptions struct {
	// EnforceOwnership restricts update and delete to the post's author.
	// When false any authenticated caller may change any post.
	EnforceOwnership bool
}

type PostService struct {
	repo   ports.PostRepository
	opts   PostOptions
	logger zerolog.Logger
}

func NewPostService(repo ports.PostRepository, opts PostOptions, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, opts: opts, logger: logger}
}

// ListPosts returns every post, newest first, optionally filtered by a
// case-insensitive search on title and content.
func (s *PostService) ListPosts(ctx context.Context, search string) ([]*domain.Post, error) {
	posts, err := s.repo.List(ctx, ports.ListPostsFilter{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// ListByAuthor returns the posts written by authorID, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	posts, err := s.repo.List(ctx, ports.ListPostsFilter{AuthorID: authorID})
	if err != nil {
		return nil, fmt.Errorf("list author posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Post{
		AuthorID:           in.AuthorID,
		Title:              in.Title,
		Content:            in.Content,
		PreviewImage:       in.PreviewImage,
		PreviewTitle:       in.PreviewTitle,
		PreviewDescription: in.PreviewDescription,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("author_id", in.AuthorID).Msg("failed to create post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	metrics.PostsWrittenTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("post_id", created.ID).Str("author_id", in.AuthorID).Msg("post created")
	return created, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in ports.UpdatePostInput) error {
	if err := s.checkOwner(ctx, in.ID, in.CallerID); err != nil {
		return err
	}

	if in.Patch.IsEmpty() {
		s.logger.Debug().Str("post_id", in.ID).Msg("empty post patch, only updatedAt changes")
	}

	if err := s.repo.Update(ctx, in.ID, in.Patch); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return domain.ErrOwnPostNotFound
		}
		return fmt.Errorf("update post: %w", err)
	}

	metrics.PostsWrittenTotal.WithLabelValues("update").Inc()
	s.logger.Info().Str("post_id", in.ID).Str("caller_id", in.CallerID).Msg("post updated")
	return nil
}

func (s *PostService) DeletePost(ctx context.Context, id, callerID string) error {
	if err := s.checkOwner(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return domain.ErrOwnPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}

	metrics.PostsWrittenTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("post_id", id).Str("caller_id", callerID).Msg("post deleted")
	return nil
}

// checkOwner is a no-op unless ownership enforcement is enabled.
func (s *PostService) checkOwner(ctx context.Context, postID, callerID string) error {
	if !s.opts.EnforceOwnership {
		return nil
	}

	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return domain.ErrOwnPostNotFound
		}
		return fmt.Errorf("check post owner: %w", err)
	}
	if post.AuthorID != callerID {
		s.logger.Warn().Str("post_id", postID).Str("caller_id", callerID).Msg("post change by non-author rejected")
		return domain.ErrNotPostAuthor
	}
	return nil
}
