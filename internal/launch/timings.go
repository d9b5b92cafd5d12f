package launch

import "time"

// Timings are the empirically tuned waits of the launch flow. The exact
// values are not load-bearing (app cold-start latency varies per device
// and store install size); they are injected so deployments can adjust
// them without a code change.
type Timings struct {
	// PerAttempt is how long one auto-try attempt waits for a launch
	// signal before moving on.
	PerAttempt time.Duration
	// AfterStoreReturn replaces PerAttempt on the re-run after the user
	// comes back from the store: a just-installed app cold-starts
	// slower.
	AfterStoreReturn time.Duration
	// InterAttempt is the pause between unsuccessful attempts, so rapid
	// navigations are not coalesced or ignored by the browser.
	InterAttempt time.Duration
	// ReturnSettle is the delay before navigating back after the user
	// returns from the opened app.
	ReturnSettle time.Duration
	// StoreReturnWindow bounds how old a store-return marker may be
	// before it is ignored as stale.
	StoreReturnWindow time.Duration
}

// DefaultTimings returns the production defaults.
func DefaultTimings() Timings {
	return Timings{
		PerAttempt:        2000 * time.Millisecond,
		AfterStoreReturn:  3500 * time.Millisecond,
		InterAttempt:      120 * time.Millisecond,
		ReturnSettle:      300 * time.Millisecond,
		StoreReturnWindow: 10 * time.Minute,
	}
}
