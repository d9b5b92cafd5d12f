package launch

import (
	"encoding/json"
	"time"
)

// StoreReturnKey is the session-storage key marking "user just left for
// the app store". Written immediately before navigating away, read and
// cleared on the next visibility-to-visible transition.
const StoreReturnKey = "outbound:store-return"

type storeReturnMarker struct {
	TS int64 `json:"ts"` // epoch millis
}

// markStoreVisit records the store-return marker. Errors are swallowed:
// if storage is unavailable the re-entry feature silently degrades.
func (m *Machine) markStoreVisit() {
	data, err := json.Marshal(storeReturnMarker{TS: m.clock.Now().UnixMilli()})
	if err != nil {
		return
	}
	_ = m.session.Set(StoreReturnKey, string(data))
}

// consumeStoreVisit reports whether a fresh store-return marker exists,
// clearing it either way when present. Stale markers (older than the
// configured window) are dropped without triggering a re-run.
func (m *Machine) consumeStoreVisit() bool {
	raw, ok, err := m.session.Get(StoreReturnKey)
	if err != nil || !ok {
		return false
	}
	_ = m.session.Delete(StoreReturnKey)

	var marker storeReturnMarker
	if err := json.Unmarshal([]byte(raw), &marker); err != nil {
		return false
	}
	age := m.clock.Now().Sub(time.UnixMilli(marker.TS))
	return age >= 0 && age <= m.timings.StoreReturnWindow
}
