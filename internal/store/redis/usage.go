package redis

import (
	"context"
	"fmt"
)

// IncrementUsage bumps the usage counter for a provider.
func (s *Store) IncrementUsage(ctx context.Context, providerID string) error {
	if err := s.client.HIncrBy(ctx, usageKey, providerID, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}
	return nil
}

// GetUsageStats retrieves usage counters for all providers.
func (s *Store) GetUsageStats(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, usageKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for id, v := range raw {
		var n int64
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
			// Skip unparseable counters rather than failing the sync.
			continue
		}
		stats[id] = n
	}
	return stats, nil
}

// DeleteUsage removes the counter for a provider.
func (s *Store) DeleteUsage(ctx context.Context, providerID string) error {
	if err := s.client.HDel(ctx, usageKey, providerID).Err(); err != nil {
		return fmt.Errorf("failed to delete usage counter: %w", err)
	}
	return nil
}
