// Package store defines the persistence interfaces for the console's local
// state: the bearer credential (the native rendering of the auth_token
// cookie) and the flushed security-event audit trail. Concrete drivers live
// under drivers/.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
)

var ErrNotFound = errors.New("store: not found")

// Credentials persists at most one bearer credential. It is the single
// source of truth for request signing: callers read it per request and
// never cache a copy.
type Credentials interface {
	// Set stores the credential, replacing any existing one.
	Set(ctx context.Context, cred domain.Credential) error

	// Get returns the stored credential. A credential past its expiry is
	// treated as absent (and lazily removed), returning ErrNotFound.
	Get(ctx context.Context, now time.Time) (domain.Credential, error)

	// Remove deletes the credential. Removing an absent credential is not
	// an error.
	Remove(ctx context.Context) error
}

// SecurityEvents is the append-only audit log for critical client-side
// security events.
type SecurityEvents interface {
	Append(ctx context.Context, event domain.SecurityEvent) error

	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]domain.SecurityEvent, error)
}

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this.
type Store interface {
	Credentials() Credentials
	SecurityEvents() SecurityEvents

	ApplyMigrations() error

	// Ping verifies the underlying database is reachable.
	Ping(ctx context.Context) error

	Close() error
}
