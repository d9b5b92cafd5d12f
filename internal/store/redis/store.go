package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultCacheTTL is the default TTL for cached resolutions. Link
	// construction is deterministic, so the TTL only bounds how long a
	// stale catalog overlay keeps serving old links.
	DefaultCacheTTL = 24 * time.Hour
)

// Store handles Redis operations for the resolution cache and usage
// counters. All callers treat it as best-effort: a Redis failure
// degrades learning and caching, never resolution.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
