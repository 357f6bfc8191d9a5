package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// imageStateTTL bounds how long an abandoned draft keeps its record.
const imageStateTTL = 30 * 24 * time.Hour

// ImageStateStore records the publish lifecycle of image assets.
// Key format: image:state:<asset name>
type ImageStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewImageStateStore creates an ImageStateStore wrapping the given Redis client.
func NewImageStateStore(client *redis.Client) *ImageStateStore {
	return &ImageStateStore{client: client, ttl: imageStateTTL}
}

// Get returns the recorded state, or "" when the asset has no record.
func (s *ImageStateStore) Get(ctx context.Context, name string) (domain.ImageState, error) {
	val, err := s.client.Get(ctx, imageStateKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("image state get: %w", err)
	}
	return parseImageState(val), nil
}

// Set records state for name, refreshing the TTL.
func (s *ImageStateStore) Set(ctx context.Context, name string, state domain.ImageState) error {
	if err := s.client.Set(ctx, imageStateKey(name), string(state), s.ttl).Err(); err != nil {
		return fmt.Errorf("image state set: %w", err)
	}
	return nil
}

func imageStateKey(name string) string {
	return "image:state:" + name
}

// parseImageState treats unknown values as a missing record.
func parseImageState(val string) domain.ImageState {
	switch state := domain.ImageState(val); state {
	case domain.ImageStateDraft, domain.ImageStatePublishing, domain.ImageStatePublished:
		return state
	default:
		return ""
	}
}
