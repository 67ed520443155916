// Package session holds the single source of truth for "is a user logged
// in" and their profile, for the lifetime of the process. Persistence is
// delegated to a SessionStore, the bearer token to a TokenSink, and the
// forced-logout signal to a realtime.Channel.
package session

import (
	"context"
	"sync"

	"github.com/padips/padips-cli/internal/logging"
	"github.com/padips/padips-cli/internal/models"
	"github.com/padips/padips-cli/internal/realtime"
	"github.com/padips/padips-cli/internal/storage"
)

// State is the controller's lifecycle state.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

// TokenSink receives the bearer token the API client should attach to
// outgoing requests. Implemented by api.HTTPClient.
type TokenSink interface {
	SetToken(token string)
	ClearToken()
}

// NoticeFunc surfaces a blocking user-facing notice (forced logout).
type NoticeFunc func(title, reason string)

// Manager implements the session state machine.
//
// Contract:
//   - Login and Logout are idempotent with respect to persisted state.
//   - The revocation watcher runs only while Authenticated; it is cancelled
//     on any exit from that state, so an event from a previous session
//     generation is never applied (generation counter checked under mu).
//   - Persist order is write-then-notify: the store is updated before the
//     realtime channel opens or any callback observes the new state.
type Manager struct {
	store   storage.SessionStore
	tokens  TokenSink
	channel realtime.Channel
	log     logging.Logger
	notice  NoticeFunc

	mu          sync.Mutex
	state       State
	sess        *models.Session
	gen         int
	cancelWatch context.CancelFunc
	onChange    func(State)
}

func NewManager(store storage.SessionStore, tokens TokenSink, channel realtime.Channel, log logging.Logger, notice NoticeFunc) *Manager {
	if notice == nil {
		notice = func(string, string) {}
	}
	return &Manager{
		store:   store,
		tokens:  tokens,
		channel: channel,
		log:     log.With("component", "session"),
		notice:  notice,
	}
}

// Load rehydrates the session at startup. A readable token+profile pair
// yields Authenticated; anything else (including a corrupt stored profile,
// which is cleared) yields Anonymous. Load never fails the startup for a
// bad local state.
func (m *Manager) Load(ctx context.Context) error {
	stored, err := m.store.Session(ctx)
	if err != nil {
		m.log.Warn(ctx, "stored session unreadable, clearing", "error", err)
		if cerr := m.store.Clear(ctx); cerr != nil {
			return cerr
		}
		return nil
	}
	if stored == nil {
		return nil
	}

	m.mu.Lock()
	m.activateLocked(ctx, *stored)
	m.log.Info(ctx, "session restored", "user", stored.User.Email)
	m.mu.Unlock()

	m.fireChange()
	return nil
}

// OnChange registers a callback invoked after every state transition. The
// callback runs outside the manager lock and may call back into it.
func (m *Manager) OnChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

func (m *Manager) fireChange() {
	m.mu.Lock()
	fn, st := m.onChange, m.state
	m.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}

// Login persists the session and transitions to Authenticated. Calling it
// again while already Authenticated replaces the session and leaves the
// same end state.
func (m *Manager) Login(ctx context.Context, s models.Session) error {
	m.mu.Lock()
	if err := m.store.SaveSession(ctx, s); err != nil {
		m.mu.Unlock()
		return err
	}
	m.activateLocked(ctx, s)
	m.log.Info(ctx, "logged in", "user", s.User.Email)
	m.mu.Unlock()

	m.fireChange()
	return nil
}

// Logout closes the push channel, clears persisted state and transitions to
// Anonymous. Calling it while Anonymous is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	if m.state == StateAnonymous {
		m.mu.Unlock()
		return nil
	}
	err := m.clearLocked(ctx)
	m.mu.Unlock()

	m.fireChange()
	return err
}

// Current returns a copy of the active session, or nil while Anonymous.
func (m *Manager) Current() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil
	}
	s := *m.sess
	return &s
}

// State reports the controller state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// activateLocked installs the session and starts the revocation watcher.
// Caller holds m.mu. An unreachable realtime channel is logged but does not
// fail the login; the HTTP 403 forceLogout hook still covers revocation.
func (m *Manager) activateLocked(ctx context.Context, s models.Session) {
	m.teardownLocked()

	m.tokens.SetToken(s.Token)
	m.sess = &s
	m.state = StateAuthenticated
	m.gen++

	events, err := m.channel.Open(ctx, s.User.ID, s.User.Role)
	if err != nil {
		m.log.Warn(ctx, "realtime channel unavailable", "error", err)
		return
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	m.cancelWatch = cancel
	go m.watch(watchCtx, m.gen, events)
}

// clearLocked is the shared teardown for Logout and revocation.
// Caller holds m.mu.
func (m *Manager) clearLocked(ctx context.Context) error {
	m.teardownLocked()
	m.tokens.ClearToken()
	m.sess = nil
	m.state = StateAnonymous
	return m.store.Clear(ctx)
}

func (m *Manager) teardownLocked() {
	if m.cancelWatch != nil {
		m.cancelWatch()
		m.cancelWatch = nil
	}
	_ = m.channel.Close()
}

func (m *Manager) watch(ctx context.Context, gen int, events <-chan realtime.RevokedEvent) {
	select {
	case ev, ok := <-events:
		if !ok {
			return
		}
		m.revoke(ctx, gen, ev)
	case <-ctx.Done():
	}
}

// Revoke handles a server-pushed forced logout: same teardown as Logout,
// plus the blocking notice. Events from an older generation are discarded.
func (m *Manager) revoke(ctx context.Context, gen int, ev realtime.RevokedEvent) {
	m.mu.Lock()
	if m.gen != gen || m.state != StateAuthenticated {
		m.mu.Unlock()
		return
	}
	if err := m.clearLocked(ctx); err != nil {
		m.log.Error(ctx, "failed to clear revoked session", "error", err)
	}
	m.mu.Unlock()

	m.fireChange()

	reason := ev.Reason
	if reason == "" {
		reason = "Access revoked"
	}
	m.notice(ev.Title(), reason)
}

// HandleForceLogout lets the HTTP layer report a 403+forceLogout response.
// It behaves like a revocation of the current generation.
func (m *Manager) HandleForceLogout(reason string) {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return
	}
	if err := m.clearLocked(context.Background()); err != nil {
		m.log.Error(context.Background(), "failed to clear revoked session", "error", err)
	}
	m.mu.Unlock()

	m.fireChange()

	if reason == "" {
		reason = "Access revoked"
	}
	m.notice("Session Ended", reason)
}
