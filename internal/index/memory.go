package index

import (
	"sync"
	"time"

	"github.com/outlink-dev/outlink/internal/catalog"
)

// MemoryIndex holds the active provider registry (builtin merged with
// the overlay, swapped atomically on reload) and in-memory usage
// counters. It acts as the fallback source of counters when Redis is
// unavailable.
type MemoryIndex struct {
	mu         sync.RWMutex
	registry   *catalog.Registry
	usage      map[string]int64 // provider id -> successful resolutions
	lastReload time.Time
}

// NewMemoryIndex creates an index serving the builtin registry.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		registry: catalog.Builtin(),
		usage:    make(map[string]int64),
	}
}

// Registry returns the active provider registry.
func (idx *MemoryIndex) Registry() *catalog.Registry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.registry
}

// SetRegistry swaps in a new registry (after an overlay reload).
func (idx *MemoryIndex) SetRegistry(reg *catalog.Registry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.registry = reg
	idx.lastReload = time.Now()
}

// Count returns the number of providers in the active registry.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.registry.Count()
}

// IncrementUsage bumps the usage counter for a provider.
func (idx *MemoryIndex) IncrementUsage(providerID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.usage[providerID]++
}

// UsageCount returns the usage counter for a provider.
func (idx *MemoryIndex) UsageCount(providerID string) int64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.usage[providerID]
}

// UsageCounters returns a copy of all usage counters.
func (idx *MemoryIndex) UsageCounters() map[string]int64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make(map[string]int64, len(idx.usage))
	for k, v := range idx.usage {
		out[k] = v
	}
	return out
}

// SetUsageCounters replaces all usage counters (startup sync from
// Redis).
func (idx *MemoryIndex) SetUsageCounters(counters map[string]int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.usage = make(map[string]int64, len(counters))
	for k, v := range counters {
		idx.usage[k] = v
	}
}

// DeleteUsage removes the counter for a provider (GC of providers that
// left the registry).
func (idx *MemoryIndex) DeleteUsage(providerID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.usage, providerID)
}

// GetLastReload returns when the registry was last swapped.
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.lastReload
}
