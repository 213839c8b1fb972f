package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/api"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/security"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/session"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/store"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/validate"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/slogx"
)

// AuthStatus is the auth manager's lifecycle state.
type AuthStatus int

const (
	StatusUninitialized AuthStatus = iota
	StatusInitializing
	StatusAuthenticated
	StatusUnauthenticated
)

// AuthManager is the single writer of the credential store and session
// tracker, and the sole subscriber of the logout signal. All auth state
// transitions go through its exported operations.
type AuthManager struct {
	client   *api.Client
	creds    store.Credentials
	tracker  *session.Tracker
	recorder *security.Recorder

	mu     sync.RWMutex
	status AuthStatus
	user   *domain.AuthenticatedUser

	unsubscribe func()
}

// NewAuthManager wires the manager and subscribes it to the logout signal
// for its lifetime. Call Close to unsubscribe.
func NewAuthManager(
	client *api.Client,
	creds store.Credentials,
	tracker *session.Tracker,
	recorder *security.Recorder,
	signal *LogoutSignal,
) *AuthManager {
	m := &AuthManager{
		client:   client,
		creds:    creds,
		tracker:  tracker,
		recorder: recorder,
		status:   StatusUninitialized,
	}
	m.unsubscribe = signal.Subscribe(m.onLogoutSignal)
	return m
}

// Init runs the startup sequence: ensure a session exists, then try to
// resume from a persisted credential by fetching the profile. A stale or
// invalid credential downgrades silently to unauthenticated; it is not an
// error surfaced to the operator.
func (m *AuthManager) Init(ctx context.Context) error {
	m.mu.Lock()
	m.status = StatusInitializing
	m.mu.Unlock()

	sessionID := m.tracker.SessionID()
	log := slogx.FromContext(ctx).With("session_id", sessionID)

	_, err := m.creds.Get(ctx, time.Now())
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.recorder.Record(ctx, domain.EventStateCorrupted, "credential read failed during init")
		}
		m.setUnauthenticated()
		return nil
	}

	profile, err := m.client.Profile(ctx)
	if err != nil {
		// The 401 path has already cleared the credential; any other
		// failure clears it here so the next start is clean.
		log.Info("profile fetch failed during init, downgrading to unauthenticated")
		_ = m.creds.Remove(ctx)
		m.tracker.Clear()
		m.setUnauthenticated()
		return nil
	}

	m.mu.Lock()
	m.user = &domain.AuthenticatedUser{
		ID:        profile.ID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		Roles:     profile.Roles,
	}
	m.status = StatusAuthenticated
	m.mu.Unlock()

	m.tracker.Refresh()
	log.Info("session resumed", "user_id", profile.ID)
	return nil
}

// Login validates the payload, signs in, and sets credential and user
// together. API failures propagate untouched: the caller owns the error
// display.
func (m *AuthManager) Login(ctx context.Context, email, password string) error {
	payload := validate.Login{Email: email, Password: password}
	if err := payload.ValidateAndSanitize(); err != nil {
		return err
	}

	resp, err := m.client.SignIn(ctx, api.SignInRequest{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		m.recorder.Record(ctx, domain.EventLoginFailed, payload.Email)
		return err
	}

	now := time.Now()
	cred := domain.NewCredential(resp.AccessToken, now, api.TokenExpiry(resp.AccessToken))
	if err := m.creds.Set(ctx, cred); err != nil {
		return err
	}

	m.mu.Lock()
	m.user = &domain.AuthenticatedUser{
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Roles:     resp.Roles,
	}
	m.status = StatusAuthenticated
	m.mu.Unlock()

	m.tracker.Refresh()
	slogx.FromContext(ctx).Info("operator signed in", "session_id", m.tracker.SessionID())
	return nil
}

// Logout clears the user, the credential and the session. Idempotent.
func (m *AuthManager) Logout(ctx context.Context) {
	_ = m.creds.Remove(ctx)
	m.tracker.Clear()
	m.setUnauthenticated()
}

// onLogoutSignal handles the pipeline's 401 broadcast. The credential is
// already gone at this point; only in-memory state and the session remain.
func (m *AuthManager) onLogoutSignal(ctx context.Context) {
	m.tracker.Clear()
	m.setUnauthenticated()
	slogx.FromContext(ctx).Info("session torn down after unauthorized response")
}

// IsAuthenticated holds iff both the persisted credential and the
// in-memory user are present.
func (m *AuthManager) IsAuthenticated(ctx context.Context) bool {
	m.mu.RLock()
	hasUser := m.user != nil
	m.mu.RUnlock()
	if !hasUser {
		return false
	}

	_, err := m.creds.Get(ctx, time.Now())
	return err == nil
}

// HasRole reports whether the signed-in user carries the named role.
func (m *AuthManager) HasRole(role string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.HasRole(role)
}

// IsAdmin is the derived admin predicate.
func (m *AuthManager) IsAdmin() bool {
	return m.HasRole(domain.RoleAdmin)
}

// CurrentUser returns the signed-in user, if any.
func (m *AuthManager) CurrentUser() (domain.AuthenticatedUser, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return domain.AuthenticatedUser{}, false
	}
	return *m.user, true
}

// Status returns the lifecycle state.
func (m *AuthManager) Status() AuthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Close unsubscribes from the logout signal.
func (m *AuthManager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *AuthManager) setUnauthenticated() {
	m.mu.Lock()
	m.user = nil
	m.status = StatusUnauthenticated
	m.mu.Unlock()
}
