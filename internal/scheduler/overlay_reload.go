package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/outlink-dev/outlink/internal/index"
	"github.com/outlink-dev/outlink/internal/logger"
	"github.com/outlink-dev/outlink/internal/sources/overlay"
)

// OverlayReloader periodically reloads the catalog overlay file and
// swaps the merged registry into the memory index.
type OverlayReloader struct {
	loader        *overlay.Loader
	mapper        *overlay.Mapper
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewOverlayReloader creates a new overlay reloader.
func NewOverlayReloader(
	overlayFile string,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *OverlayReloader {
	return &OverlayReloader{
		loader:        overlay.NewLoader(overlayFile),
		mapper:        overlay.NewMapper(),
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the overlay immediately, then keeps it fresh on a ticker
// and on manual triggers.
func (or *OverlayReloader) Start(ctx context.Context) error {
	if err := or.Reload(ctx); err != nil {
		return fmt.Errorf("initial overlay load failed: %w", err)
	}

	ticker := time.NewTicker(or.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := or.Reload(ctx); err != nil {
					or.logger.Error("failed to reload catalog overlay",
						logger.Error(err))
				}
			case <-or.manualTrigger:
				or.logger.Info("manual overlay reload triggered")
				if err := or.Reload(ctx); err != nil {
					or.logger.Error("failed to reload catalog overlay",
						logger.Error(err))
				}
			case <-or.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Reload loads, maps and merges the overlay, then swaps the registry.
func (or *OverlayReloader) Reload(_ context.Context) error {
	config, err := or.loader.Load()
	if err != nil {
		return err
	}

	defs, err := or.mapper.MapProviders(config)
	if err != nil {
		return err
	}

	reg, err := overlay.MergeWithBuiltin(defs)
	if err != nil {
		return fmt.Errorf("failed to merge overlay: %w", err)
	}

	or.index.SetRegistry(reg)
	or.logger.Info("catalog overlay reloaded",
		logger.Int("overlay_providers", len(defs)),
		logger.Int("total_providers", reg.Count()))
	return nil
}

// Stop halts the periodic reload.
func (or *OverlayReloader) Stop() {
	close(or.stopCh)
}
