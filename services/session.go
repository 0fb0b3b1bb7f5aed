package services

import (
	"sync"
	"time"

	"github.com/LevaniIlashvili/Bankist/models"
)

// Notifier is the outward edge to the display layer. The session manager and
// loan scheduler hand it raw values; formatting and delivery (websocket
// broadcast) are the display layer's concern.
type Notifier interface {
	SessionTick(remaining int)
	SessionUpdate()
	SessionLoggedOut()
}

// SessionManager owns the login/logout state machine. There is at most one
// active session, and at most one countdown timer, at any time: a new login
// supersedes whatever session was running.
type SessionManager struct {
	mu        sync.Mutex
	store     *AccountStore
	notifier  Notifier
	ttl       int // countdown start, in seconds
	tickEvery time.Duration
	onEnd     func(username string)
	current   *session
}

type session struct {
	username  string
	remaining int
	sorted    bool
	done      chan struct{}
}

func NewSessionManager(store *AccountStore, notifier Notifier, ttlSeconds int, tickEvery time.Duration) *SessionManager {
	return &SessionManager{
		store:     store,
		notifier:  notifier,
		ttl:       ttlSeconds,
		tickEvery: tickEvery,
	}
}

// SetOnSessionEnd registers a hook run whenever a session ends, whatever the
// reason (timeout, explicit logout, account closure). Used to drop pending
// loan approvals for the departing user.
func (m *SessionManager) SetOnSessionEnd(fn func(username string)) {
	m.onEnd = fn
}

// Login authenticates by exact username match and exact numeric pin
// equality. On success the previous session (if any) is cancelled and a
// fresh countdown starts. On failure nothing changes.
func (m *SessionManager) Login(username string, pin int) (models.Account, error) {
	acc, ok := m.store.FindByUsername(username)
	if !ok || acc.Pin != pin {
		return models.Account{}, ErrAuth
	}

	m.mu.Lock()
	prev := m.current
	sess := &session{username: acc.Username, remaining: m.ttl, done: make(chan struct{})}
	m.current = sess
	m.mu.Unlock()

	// The superseded session ends like any other: its countdown stops and
	// its pending loan approvals are dropped. Only the logged-out signal is
	// withheld, since the display is about to show the new login.
	if prev != nil {
		close(prev.done)
		if m.onEnd != nil {
			m.onEnd(prev.username)
		}
	}

	m.notifier.SessionTick(m.ttl)
	go m.run(sess)
	return acc, nil
}

// Current returns the logged-in username, if any.
func (m *SessionManager) Current() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return "", false
	}
	return m.current.username, true
}

// Touch resets the countdown to its full duration. Called after every
// successful mutating action, not on reads.
func (m *SessionManager) Touch() error {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return ErrNoSession
	}
	m.current.remaining = m.ttl
	m.mu.Unlock()
	m.notifier.SessionTick(m.ttl)
	return nil
}

// ToggleSort flips the session's movement-sort toggle and returns the new
// value.
func (m *SessionManager) ToggleSort() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return false, ErrNoSession
	}
	m.current.sorted = !m.current.sorted
	return m.current.sorted, nil
}

// Sorted reports the session's current sort toggle.
func (m *SessionManager) Sorted() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return false, ErrNoSession
	}
	return m.current.sorted, nil
}

// Logout explicitly ends the current session.
func (m *SessionManager) Logout() {
	m.mu.Lock()
	sess := m.current
	m.mu.Unlock()
	if sess != nil {
		m.end(sess)
	}
}

func (m *SessionManager) run(sess *session) {
	ticker := time.NewTicker(m.tickEvery)
	defer ticker.Stop()
	for {
		select {
		case <-sess.done:
			return
		case <-ticker.C:
			if m.tick(sess) {
				return
			}
		}
	}
}

// tick decrements the countdown by one second and reports whether the
// ticking goroutine should stop. The final "00:00" frame is emitted before
// the logged-out signal so the display never skips it.
func (m *SessionManager) tick(sess *session) bool {
	m.mu.Lock()
	if m.current != sess {
		m.mu.Unlock()
		return true
	}
	sess.remaining--
	remaining := sess.remaining
	m.mu.Unlock()

	m.notifier.SessionTick(remaining)
	if remaining <= 0 {
		m.end(sess)
		return true
	}
	return false
}

// end tears the session down exactly once: it only proceeds if sess is still
// the current session.
func (m *SessionManager) end(sess *session) {
	m.mu.Lock()
	if m.current != sess {
		m.mu.Unlock()
		return
	}
	m.current = nil
	m.mu.Unlock()

	close(sess.done)
	if m.onEnd != nil {
		m.onEnd(sess.username)
	}
	m.notifier.SessionLoggedOut()
}
