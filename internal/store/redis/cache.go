package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheToken stores an input -> encoded candidate token resolution.
func (s *Store) CacheToken(ctx context.Context, input, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, CacheKey(input), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache token: %w", err)
	}
	return nil
}

// GetCachedToken retrieves a cached token. Cache misses return ""
// without an error.
func (s *Store) GetCachedToken(ctx context.Context, input string) (string, error) {
	token, err := s.client.Get(ctx, CacheKey(input)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get cached token: %w", err)
	}
	return token, nil
}

// InvalidateToken removes a cached resolution.
func (s *Store) InvalidateToken(ctx context.Context, input string) error {
	if err := s.client.Del(ctx, CacheKey(input)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate token: %w", err)
	}
	return nil
}
