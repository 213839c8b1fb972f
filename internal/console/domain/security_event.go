package domain

import (
	"time"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/idx"
)

// Security event types recorded by the client runtime for audit correlation.
// These describe client-side observations, not server authorization outcomes.
const (
	EventUnauthorized       = "unauthorized_response"
	EventOriginRejected     = "csrf_origin_rejected"
	EventNavigationRejected = "navigation_rejected"
	EventLoginFailed        = "login_failed"
	EventStateCorrupted     = "state_corrupted"
)

// SecurityEvent is one audit record. Critical events are flushed to the
// state database; the rest live only in the session buffer.
type SecurityEvent struct {
	ID        idx.ID
	Type      string
	Detail    string
	SessionID string
	At        time.Time
}

// Critical reports whether this event type must be persisted.
func (e SecurityEvent) Critical() bool {
	switch e.Type {
	case EventUnauthorized, EventOriginRejected, EventStateCorrupted:
		return true
	}
	return false
}
