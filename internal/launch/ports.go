package launch

import (
	"sync"
	"time"
)

// NavMethod tells the host runtime which navigation primitive to use.
// intent:// URLs must go through document-location assignment (the OS
// intercepts it); custom schemes inside an app container are more
// reliable via a synthetic anchor click; custom schemes in a plain
// browser go through an invisible iframe so an unhandled scheme does
// not surface a failed-navigation error page.
type NavMethod string

const (
	NavLocation    NavMethod = "location"
	NavAnchorClick NavMethod = "anchor"
	NavIframe      NavMethod = "iframe"
)

// Navigator is the machine's outbound port to the page.
// Navigation is fire-and-forget: once issued it cannot be cancelled.
type Navigator interface {
	Navigate(url string, method NavMethod)
	// Back navigates browser history. Returns false when there is no
	// history to go back to.
	Back() bool
}

// Clock abstracts time so the sequential attempt loop is testable
// without real waits.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// NewClock returns the wall clock.
func NewClock() Clock { return realClock{} }

// SessionStore is the machine's short-lived cross-navigation storage
// (sessionStorage on the page). Implementations may fail under privacy
// settings; the machine swallows every error, degrading the
// store-return feature rather than breaking the flow.
type SessionStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemorySession is an in-memory SessionStore for tests and for hosts
// without page storage.
type MemorySession struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemorySession creates an empty in-memory session store.
func NewMemorySession() *MemorySession {
	return &MemorySession{values: make(map[string]string)}
}

func (s *MemorySession) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemorySession) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemorySession) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
