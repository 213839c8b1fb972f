// Package session holds the process-wide ephemeral session state: a random
// session id used to correlate client-side security telemetry, and the
// per-session CSRF token. Neither is used for server authorization (the
// bearer token does that), so both can be regenerated without invalidating
// the stored credential.
package session

import (
	"sync"
	"time"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/cryptox"
)

// TTL is the session expiry horizon. Expiry is computed on demand, never
// enforced by a timer.
const TTL = 24 * time.Hour

// Tracker owns the session id, start timestamp and CSRF token. The id and
// the CSRF token are always either both absent or both present; absence of
// either forces regeneration of both on next access.
type Tracker struct {
	mu        sync.Mutex
	id        string
	startedAt time.Time
	csrf      string
	onClear   []func()
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// SessionID returns the session id, lazily creating the session on first
// access after construction or Clear.
func (t *Tracker) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensure()
	return t.id
}

// CSRFToken returns the per-session anti-forgery token, creating the session
// if needed. The token is pinned for the session's lifetime.
func (t *Tracker) CSRFToken() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensure()
	return t.csrf
}

// StartedAt returns the session start time, or the zero time when no
// session exists yet.
func (t *Tracker) StartedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startedAt
}

// Refresh rewrites the start timestamp. Called after a successful
// re-authentication so an old session does not read as expired.
func (t *Tracker) Refresh() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.id != "" {
		t.startedAt = time.Now().UTC()
	}
}

// IsExpired reports whether the session started more than TTL before now.
// A not-yet-created session is not expired.
func (t *Tracker) IsExpired(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.startedAt.IsZero() {
		return false
	}
	return now.Sub(t.startedAt) > TTL
}

// Clear removes the session id, start time and CSRF token, then runs every
// registered clear hook (the security-event buffer registers one).
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.id = ""
	t.startedAt = time.Time{}
	t.csrf = ""
	hooks := t.onClear
	t.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// OnClear registers fn to run whenever the session is cleared.
func (t *Tracker) OnClear(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onClear = append(t.onClear, fn)
}

// ensure lazily (re)creates the session. Caller must hold t.mu.
func (t *Tracker) ensure() {
	if t.id != "" && t.csrf != "" {
		return
	}
	t.id = cryptox.MustRandomHex(cryptox.SessionIDSize)
	t.csrf = cryptox.MustRandomHex(cryptox.CSRFTokenSize)
	t.startedAt = time.Now().UTC()
}
