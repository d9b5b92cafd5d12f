package scheduler

import (
	"context"
	"fmt"

	"github.com/outlink-dev/outlink/internal/index"
	"github.com/outlink-dev/outlink/internal/logger"
	redisstore "github.com/outlink-dev/outlink/internal/store/redis"
)

// RedisSyncer loads persisted usage counters into the memory index at
// startup, so learning survives restarts.
type RedisSyncer struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new syncer.
func NewRedisSyncer(store *redisstore.Store, idx *index.MemoryIndex, log logger.Logger) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync pulls usage counters from Redis into memory.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	stats, err := rs.store.GetUsageStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load usage counters: %w", err)
	}
	if len(stats) == 0 {
		rs.logger.Info("no usage counters in redis, starting fresh")
		return nil
	}

	rs.index.SetUsageCounters(stats)
	rs.logger.Info("usage counters synced from redis",
		logger.Int("providers", len(stats)))
	return nil
}
