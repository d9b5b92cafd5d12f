package launch

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/outlink-dev/outlink/internal/domain"
	"github.com/outlink-dev/outlink/internal/engine"
	"github.com/outlink-dev/outlink/internal/logger"
)

// Machine drives one landing-page life: auto-try the native app,
// detect the outcome, fall back to store install or web, and handle
// re-entry when the tab becomes visible again.
//
// Outcome detection is a heuristic: the page going hidden (or the
// window blurring) during an attempt is read as "the OS switched away
// to handle this URL". There is no OS-level launch confirmation; a user
// manually switching apps inside the window is a known false positive.
// Absence of a signal within the timeout is the only failure mode — the
// machine cannot distinguish "not installed" from "slow" from "intent
// dialog declined", and treats all three identically.
//
// The host feeds it events (OnHidden, OnBlur, OnVisible, user choices);
// the machine issues commands through the Navigator port. All attempts
// are strictly sequential: parallel navigations race and can open the
// wrong app or duplicate tabs.
type Machine struct {
	candidate *domain.CandidateLink
	platform  engine.Platform
	nav       Navigator
	clock     Clock
	session   SessionStore
	timings   Timings
	log       logger.Logger
	returnTo  string // pre-validated relative path, may be empty

	mu      sync.Mutex
	state   domain.OpenState
	choice  domain.InstallChoice
	autoTry []domain.OutboundLink
	started bool
	running bool
	signal  chan struct{} // armed only while one attempt is waiting
	done    chan struct{} // closed when the current sequence ends
}

// Config wires a machine. Candidate must already have passed the
// transport codec; ReturnTo must already be validated.
type Config struct {
	Candidate *domain.CandidateLink
	Platform  engine.Platform
	Navigator Navigator
	Clock     Clock
	Session   SessionStore
	Timings   Timings
	Logger    logger.Logger
	ReturnTo  string
}

// NewMachine creates a machine in the idle state.
func NewMachine(cfg Config) *Machine {
	clock := cfg.Clock
	if clock == nil {
		clock = NewClock()
	}
	session := cfg.Session
	if session == nil {
		session = NewMemorySession()
	}
	return &Machine{
		candidate: cfg.Candidate,
		platform:  cfg.Platform,
		nav:       cfg.Navigator,
		clock:     clock,
		session:   session,
		timings:   cfg.Timings,
		log:       cfg.Logger,
		returnTo:  cfg.ReturnTo,
		state:     domain.OpenIdle,
		choice:    domain.InstallNone,
	}
}

// State returns the current open state.
func (m *Machine) State() domain.OpenState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Choice returns the current install choice.
func (m *Machine) Choice() domain.InstallChoice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.choice
}

// HasAutoTry reports whether any auto-try link exists for this
// candidate on this platform. Valid after Start.
func (m *Machine) HasAutoTry() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.autoTry) > 0
}

// AutoTry returns the computed auto-try sequence. Valid after Start.
func (m *Machine) AutoTry() []domain.OutboundLink {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.OutboundLink, len(m.autoTry))
	copy(out, m.autoTry)
	return out
}

// StoreLinksRanked returns the candidate's store links filtered and
// ordered for the current OS.
func (m *Machine) StoreLinksRanked() []domain.OutboundLink {
	return engine.FilterStoreLinksByOS(engine.StoreLinks(m.candidate), m.platform.OS)
}

func (m *Machine) intlAndroid() bool {
	return engine.IsIntlAndroidContext(m.candidate, m.platform.OS, m.platform.DeploymentCN)
}

// Start computes the auto-try set and begins the first sequential
// attempt run. Guarded: only the first call per machine does anything,
// so a duplicate invocation from the host lifecycle is harmless.
func (m *Machine) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true

	links := engine.AutoTryLinks(m.candidate, m.platform.OS)
	if m.intlAndroid() {
		links = engine.SanitizeIntlAndroid(links)
	}
	m.autoTry = links

	if len(links) == 0 {
		if m.intlAndroid() {
			// Nothing to try natively: send the user straight to the
			// Play listing (or a Play search when no concrete store
			// link exists).
			m.state = domain.OpenFailed
			m.choice = domain.InstallYes
			target := engine.FallbackGooglePlayURL(m.candidate)
			if gp := engine.GooglePlayLink(engine.StoreLinks(m.candidate)); gp != nil {
				target = gp.URL
			}
			m.mu.Unlock()
			m.markStoreVisit()
			m.nav.Navigate(target, NavLocation)
			return
		}
		m.state = domain.OpenFailed
		m.choice = domain.InstallAsking
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.runSequence(ctx, false)
}

// Retry re-runs the sequential attempt logic. Available whenever
// auto-try links exist and the machine is idle or failed.
func (m *Machine) Retry(ctx context.Context) {
	m.mu.Lock()
	ok := len(m.autoTry) > 0 &&
		(m.state == domain.OpenIdle || m.state == domain.OpenFailed)
	m.mu.Unlock()
	if ok {
		m.runSequence(ctx, false)
	}
}

// OnHidden records a visibilitychange-to-hidden event.
func (m *Machine) OnHidden() { m.launchSignal() }

// OnBlur records a window blur event.
func (m *Machine) OnBlur() { m.launchSignal() }

func (m *Machine) launchSignal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.signal == nil {
		return
	}
	select {
	case m.signal <- struct{}{}:
	default:
	}
}

// OnVisible handles a visibility-to-visible transition: a fresh
// store-return marker re-runs the auto-try sequence with the longer
// timeout; otherwise, if the app had opened, the page navigates back to
// where the user came from after a short settle delay.
func (m *Machine) OnVisible(ctx context.Context) {
	if m.consumeStoreVisit() {
		m.runSequence(ctx, true)
		return
	}

	m.mu.Lock()
	opened := m.state == domain.OpenOpened
	m.mu.Unlock()
	if !opened {
		return
	}

	go func() {
		select {
		case <-m.clock.After(m.timings.ReturnSettle):
			m.returnNavigate()
		case <-ctx.Done():
		}
	}()
}

// ChooseInstall records the user's answer to the install prompt.
// Choosing install with store links available leaves navigation to
// OpenStore (the host renders the ranked list); without store links it
// falls through to the web link. Declining goes to the web link, or
// back when none exists.
func (m *Machine) ChooseInstall(ctx context.Context, install bool) {
	m.mu.Lock()
	if install {
		m.choice = domain.InstallYes
	} else {
		m.choice = domain.InstallNo
	}
	m.mu.Unlock()

	if install {
		if m.intlAndroid() {
			target := engine.FallbackGooglePlayURL(m.candidate)
			if gp := engine.GooglePlayLink(engine.StoreLinks(m.candidate)); gp != nil {
				target = gp.URL
			}
			m.markStoreVisit()
			m.nav.Navigate(target, NavLocation)
			return
		}
		if len(m.StoreLinksRanked()) > 0 {
			return
		}
	}

	if web := engine.WebLink(m.candidate); web != nil {
		m.nav.Navigate(web.URL, NavLocation)
		return
	}
	m.returnNavigate()
}

// OpenStore records the store-return marker and navigates to the given
// store link. The marker is written before leaving so the next
// visibility-to-visible transition can recognize the return trip.
func (m *Machine) OpenStore(link domain.OutboundLink) {
	m.markStoreVisit()
	m.nav.Navigate(link.URL, NavLocation)
}

// runSequence tries each auto-try link in order, waiting per attempt
// for a launch signal. fromStoreReturn selects the longer timeout and,
// on failure, direct web navigation instead of the install prompt.
func (m *Machine) runSequence(ctx context.Context, fromStoreReturn bool) {
	m.mu.Lock()
	if m.running || len(m.autoTry) == 0 {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.state = domain.OpenTrying
	done := make(chan struct{})
	m.done = done
	links := make([]domain.OutboundLink, len(m.autoTry))
	copy(links, m.autoTry)
	m.mu.Unlock()

	timeout := m.timings.PerAttempt
	if fromStoreReturn {
		timeout = m.timings.AfterStoreReturn
	}

	go func() {
		defer close(done)

		opened := false
		for i, link := range links {
			if i > 0 {
				select {
				case <-m.clock.After(m.timings.InterAttempt):
				case <-ctx.Done():
					m.finishSequence(false, false)
					return
				}
			}
			if m.attempt(ctx, link, timeout) {
				opened = true
				break
			}
			if ctx.Err() != nil {
				m.finishSequence(false, false)
				return
			}
		}

		m.finishSequence(opened, fromStoreReturn)
	}()
}

func (m *Machine) finishSequence(opened, fromStoreReturn bool) {
	m.mu.Lock()
	m.running = false
	if opened {
		m.state = domain.OpenOpened
		m.mu.Unlock()
		return
	}
	m.state = domain.OpenFailed
	if !fromStoreReturn && m.choice == domain.InstallNone {
		m.choice = domain.InstallAsking
	}
	m.mu.Unlock()

	if fromStoreReturn {
		if web := engine.WebLink(m.candidate); web != nil {
			m.nav.Navigate(web.URL, NavLocation)
		}
	}
}

// attempt issues one navigation and waits for the earliest of: a launch
// signal, the per-attempt timer, or context cancellation. The signal
// channel is armed only for the duration of the wait and detached on
// first resolution, so late events never count against a different
// attempt.
func (m *Machine) attempt(ctx context.Context, link domain.OutboundLink, timeout time.Duration) bool {
	sig := make(chan struct{}, 1)
	m.mu.Lock()
	m.signal = sig
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.signal = nil
		m.mu.Unlock()
	}()

	if m.log != nil {
		m.log.Debug("launch attempt",
			logger.String("attempt_id", uuid.NewString()),
			logger.String("type", string(link.Type)),
			logger.String("url", link.URL))
	}

	m.nav.Navigate(link.URL, MethodFor(link, m.platform.InApp))

	select {
	case <-sig:
		return true
	case <-m.clock.After(timeout):
		return false
	case <-ctx.Done():
		return false
	}
}

func (m *Machine) returnNavigate() {
	if m.returnTo != "" {
		m.nav.Navigate(m.returnTo, NavLocation)
		return
	}
	if !m.nav.Back() {
		m.nav.Navigate("/", NavLocation)
	}
}

// MethodFor picks the navigation primitive for a link: intent URLs
// always use location assignment; other non-http schemes use an anchor
// click inside app containers and an iframe in plain browsers; http(s)
// uses location assignment.
func MethodFor(link domain.OutboundLink, inApp bool) NavMethod {
	if strings.HasPrefix(link.URL, "intent://") {
		return NavLocation
	}
	if !strings.HasPrefix(link.URL, "http://") && !strings.HasPrefix(link.URL, "https://") {
		if inApp {
			return NavAnchorClick
		}
		return NavIframe
	}
	return NavLocation
}
