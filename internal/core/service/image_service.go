package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

const (
	DefaultDraftPrefix     = "files/uploads/images/draft"
	DefaultPublishedPrefix = "files/uploads/images"

	imageHashLength = 13
	imageExtension  = ".webp"
)

// ImageOptions sets where drafts and published assets live in the bucket.
type ImageOptions struct {
	DraftPrefix     string
	PublishedPrefix string
}

// ImageService moves uploaded images from a draft location to a published one.
//
// The state store records draft → publishing → published so that a publish
// interrupted after the copy can be retried: a published asset only needs its
// draft removed. State tracking is best effort and never fails a request.
type ImageService struct {
	store   ports.ObjectStore
	encoder ports.ImageEncoder
	states  ports.ImageStateStore
	cleanup ports.CleanupQueue
	opts    ImageOptions
	now     func() time.Time
	logger  zerolog.Logger
}

// NewImageService wires the pipeline. cleanup may be nil, in which case a
// failed draft delete fails the publish request.
func NewImageService(
	store ports.ObjectStore,
	encoder ports.ImageEncoder,
	states ports.ImageStateStore,
	cleanup ports.CleanupQueue,
	opts ImageOptions,
	logger zerolog.Logger,
) *ImageService {
	if opts.DraftPrefix == "" {
		opts.DraftPrefix = DefaultDraftPrefix
	}
	if opts.PublishedPrefix == "" {
		opts.PublishedPrefix = DefaultPublishedPrefix
	}
	return &ImageService{
		store:   store,
		encoder: encoder,
		states:  states,
		cleanup: cleanup,
		opts:    opts,
		now:     time.Now,
		logger:  logger,
	}
}

// UploadDraft re-encodes the upload to WebP and stores it as a draft.
// It returns the public URL of the draft object.
func (s *ImageService) UploadDraft(ctx context.Context, in ports.UploadImageInput) (string, error) {
	ext := fileExt(in.Filename)
	if !slices.Contains(domain.AllowedImageExtensions, ext) {
		return "", domain.ErrInvalidFileType
	}
	if in.Body == nil {
		return "", domain.ErrImageRequired
	}

	start := time.Now()
	data, err := s.encoder.Encode(in.Body)
	metrics.ImageEncodeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	name := imageName(in.Filename, s.now())
	draftURL, err := s.store.Put(ctx, s.draftKey(name), data, domain.ImageWebPContentType)
	if err != nil {
		return "", fmt.Errorf("store draft: %w", err)
	}
	s.setState(ctx, name, domain.ImageStateDraft)

	metrics.ImagesUploadedTotal.Inc()
	s.logger.Info().Str("image", name).Int("bytes", len(data)).Msg("image draft stored")
	return draftURL, nil
}

// Publish copies the draft referenced by imageURL to the published location
// and removes the draft. Publishing an already published asset only retries
// the draft removal.
func (s *ImageService) Publish(ctx context.Context, imageURL string) (string, error) {
	name, err := assetNameFromURL(imageURL)
	if err != nil {
		return "", err
	}

	// Only a published asset cannot re-enter publishing.
	if !s.getState(ctx, name).CanTransitionTo(domain.ImageStatePublishing) {
		publishedURL, err := s.store.URL(ctx, s.publishedKey(name))
		if err != nil {
			metrics.ImagesPublishedTotal.WithLabelValues("error").Inc()
			return "", fmt.Errorf("publish image: %w", err)
		}
		if err := s.finishDraft(ctx, name); err != nil {
			metrics.ImagesPublishedTotal.WithLabelValues("error").Inc()
			return "", err
		}
		metrics.ImagesPublishedTotal.WithLabelValues("replayed").Inc()
		return publishedURL, nil
	}

	s.setState(ctx, name, domain.ImageStatePublishing)

	data, err := s.store.Get(ctx, s.draftKey(name))
	if err != nil {
		metrics.ImagesPublishedTotal.WithLabelValues("error").Inc()
		if errors.Is(err, domain.ErrObjectNotFound) {
			return "", domain.ErrDraftNotFound
		}
		return "", fmt.Errorf("read draft: %w", err)
	}

	publishedURL, err := s.store.Put(ctx, s.publishedKey(name), data, domain.ImageWebPContentType)
	if err != nil {
		metrics.ImagesPublishedTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("store published image: %w", err)
	}
	s.setState(ctx, name, domain.ImageStatePublished)

	if err := s.finishDraft(ctx, name); err != nil {
		metrics.ImagesPublishedTotal.WithLabelValues("error").Inc()
		return "", err
	}

	metrics.ImagesPublishedTotal.WithLabelValues("published").Inc()
	s.logger.Info().Str("image", name).Msg("image published")
	return publishedURL, nil
}

// RemoveDraft deletes the draft copy of name. A missing draft is not an error.
func (s *ImageService) RemoveDraft(ctx context.Context, name string) error {
	err := s.store.Delete(ctx, s.draftKey(name))
	if err != nil && !errors.Is(err, domain.ErrObjectNotFound) {
		return fmt.Errorf("remove draft %s: %w", name, err)
	}
	return nil
}

// finishDraft removes the draft inline and falls back to the cleanup queue.
func (s *ImageService) finishDraft(ctx context.Context, name string) error {
	err := s.RemoveDraft(ctx, name)
	if err == nil {
		return nil
	}
	if s.cleanup != nil && s.cleanup.Enqueue(name) {
		metrics.ImagesPublishedTotal.WithLabelValues("cleanup_deferred").Inc()
		s.logger.Warn().Err(err).Str("image", name).Msg("draft removal deferred to cleanup queue")
		return nil
	}
	return err
}

func (s *ImageService) getState(ctx context.Context, name string) domain.ImageState {
	state, err := s.states.Get(ctx, name)
	if err != nil {
		s.logger.Warn().Err(err).Str("image", name).Msg("image state lookup failed, assuming draft")
		return ""
	}
	return state
}

func (s *ImageService) setState(ctx context.Context, name string, next domain.ImageState) {
	if err := s.states.Set(ctx, name, next); err != nil {
		s.logger.Warn().Err(err).Str("image", name).Str("state", string(next)).Msg("failed to record image state")
	}
}

func (s *ImageService) draftKey(name string) string {
	return path.Join(s.opts.DraftPrefix, name)
}

func (s *ImageService) publishedKey(name string) string {
	return path.Join(s.opts.PublishedPrefix, name)
}

// fileExt returns the lower-cased extension of the file's base name. A
// dotfile such as ".png" has no extension.
func fileExt(filename string) string {
	base := strings.TrimPrefix(path.Base(filename), ".")
	return strings.ToLower(path.Ext(base))
}

// imageName derives the stored asset name: the first 13 hex characters of
// md5(uploaded filename), the upload time in Unix milliseconds, ".webp".
func imageName(originalName string, at time.Time) string {
	sum := md5.Sum([]byte(originalName))
	return hex.EncodeToString(sum[:])[:imageHashLength] + strconv.FormatInt(at.UnixMilli(), 10) + imageExtension
}

// assetNameFromURL extracts the asset name from a storage URL: the text
// after the last "/" once the URL is percent-decoded and its query dropped.
func assetNameFromURL(raw string) (string, error) {
	decoded, err := url.PathUnescape(strings.TrimSpace(raw))
	if err != nil {
		return "", domain.ErrImageURLInvalid
	}
	decoded, _, _ = strings.Cut(decoded, "?")
	name := decoded[strings.LastIndex(decoded, "/")+1:]
	if name == "" || name == "." || name == ".." {
		return "", domain.ErrImageURLInvalid
	}
	return name, nil
}
