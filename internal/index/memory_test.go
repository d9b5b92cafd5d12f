package index

import (
	"testing"

	"github.com/outlink-dev/outlink/internal/catalog"
	"github.com/outlink-dev/outlink/internal/domain"
)

func singleProviderRegistry(t *testing.T) *catalog.Registry {
	t.Helper()
	reg, err := catalog.NewRegistry([]*catalog.ProviderDefinition{
		{
			ID:          "solo",
			DisplayName: catalog.DisplayName{EN: "Solo"},
			WebLink: func(ctx domain.LinkContext) string {
				return "https://solo.test/search?q=" + ctx.Query
			},
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	return reg
}

func TestNewMemoryIndexServesBuiltin(t *testing.T) {
	idx := NewMemoryIndex()

	if idx.Registry() == nil {
		t.Fatal("Registry returned nil")
	}
	if idx.Count() != catalog.Builtin().Count() {
		t.Errorf("Count = %d, want builtin size %d", idx.Count(), catalog.Builtin().Count())
	}
	if !idx.GetLastReload().IsZero() {
		t.Error("fresh index reports a reload time")
	}
}

func TestSetRegistrySwapsAndStamps(t *testing.T) {
	idx := NewMemoryIndex()

	reg := singleProviderRegistry(t)
	idx.SetRegistry(reg)

	if idx.Count() != 1 {
		t.Errorf("Count after swap = %d, want 1", idx.Count())
	}
	if idx.Registry() != reg {
		t.Error("Registry did not return the swapped-in registry")
	}
	if idx.GetLastReload().IsZero() {
		t.Error("SetRegistry did not stamp the reload time")
	}
}

func TestUsageCounters(t *testing.T) {
	idx := NewMemoryIndex()

	idx.IncrementUsage("jd")
	idx.IncrementUsage("jd")
	idx.IncrementUsage("youtube")

	if got := idx.UsageCount("jd"); got != 2 {
		t.Errorf("UsageCount(jd) = %d, want 2", got)
	}
	if got := idx.UsageCount("unknown"); got != 0 {
		t.Errorf("UsageCount(unknown) = %d, want 0", got)
	}

	counters := idx.UsageCounters()
	if len(counters) != 2 || counters["jd"] != 2 || counters["youtube"] != 1 {
		t.Errorf("UsageCounters = %v", counters)
	}

	// The returned map is a copy.
	counters["jd"] = 99
	if got := idx.UsageCount("jd"); got != 2 {
		t.Errorf("mutating the copy leaked into the index: UsageCount(jd) = %d", got)
	}
}

func TestSetUsageCountersReplaces(t *testing.T) {
	idx := NewMemoryIndex()
	idx.IncrementUsage("stale")

	idx.SetUsageCounters(map[string]int64{"jd": 7})

	if got := idx.UsageCount("stale"); got != 0 {
		t.Errorf("stale counter survived replacement: %d", got)
	}
	if got := idx.UsageCount("jd"); got != 7 {
		t.Errorf("UsageCount(jd) = %d, want 7", got)
	}
}

func TestDeleteUsage(t *testing.T) {
	idx := NewMemoryIndex()
	idx.IncrementUsage("gone")

	idx.DeleteUsage("gone")
	idx.DeleteUsage("never-there") // no-op

	if got := idx.UsageCount("gone"); got != 0 {
		t.Errorf("UsageCount(gone) = %d after delete", got)
	}
}
