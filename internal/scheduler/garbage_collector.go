package scheduler

import (
	"context"
	"time"

	"github.com/outlink-dev/outlink/internal/index"
	"github.com/outlink-dev/outlink/internal/logger"
	redisstore "github.com/outlink-dev/outlink/internal/store/redis"
)

// GarbageCollector prunes usage counters for providers that are no
// longer in the active registry (removed from the overlay, or a retired
// builtin).
type GarbageCollector struct {
	store    *redisstore.Store
	index    *index.MemoryIndex
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewGarbageCollector creates a new garbage collector.
func NewGarbageCollector(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
) *GarbageCollector {
	return &GarbageCollector{
		store:    store,
		index:    idx,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one collection immediately, then collects periodically.
func (gc *GarbageCollector) Start(ctx context.Context) error {
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed",
						logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Collect removes counters whose provider id is unknown to the active
// registry, in memory and in Redis.
func (gc *GarbageCollector) Collect(ctx context.Context) error {
	reg := gc.index.Registry()
	removed := 0

	for id := range gc.index.UsageCounters() {
		if _, ok := reg.Get(id); ok {
			continue
		}
		gc.index.DeleteUsage(id)
		if gc.store != nil {
			if err := gc.store.DeleteUsage(ctx, id); err != nil {
				gc.logger.Warn("failed to delete orphaned usage counter",
					logger.String("provider", id),
					logger.Error(err))
				continue
			}
		}
		removed++
	}

	if removed > 0 {
		gc.logger.Info("garbage collection completed",
			logger.Int("removed", removed))
	}
	return nil
}

// Stop halts the periodic collection.
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}
