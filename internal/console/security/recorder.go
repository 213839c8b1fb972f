// Package security records client-side security telemetry: CSRF origin
// rejections, 401 teardowns, blocked redirects. Events are correlated by
// session id, buffered in memory, and the critical subset is flushed to the
// state database for post-incident review.
package security

import (
	"context"
	"sync"
	"time"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/session"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/store"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/idx"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/slogx"
)

// Recorder buffers security events for the current session. The buffer is
// discarded when the session is cleared; persisted critical events survive.
type Recorder struct {
	tracker *session.Tracker
	events  store.SecurityEvents

	mu     sync.Mutex
	buffer []domain.SecurityEvent
}

// NewRecorder wires a recorder to the session tracker. Clearing the session
// also discards the event buffer.
func NewRecorder(tracker *session.Tracker, events store.SecurityEvents) *Recorder {
	r := &Recorder{tracker: tracker, events: events}
	tracker.OnClear(r.reset)
	return r
}

// Record buffers one event, persisting it when the type is critical.
// Recording never fails the operation that triggered it: persistence errors
// are logged and swallowed.
func (r *Recorder) Record(ctx context.Context, eventType, detail string) {
	event := domain.SecurityEvent{
		ID:        idx.New(),
		Type:      eventType,
		Detail:    detail,
		SessionID: r.tracker.SessionID(),
		At:        time.Now().UTC(),
	}

	log := slogx.FromContext(ctx)
	log.Warn("security event",
		"event_id", event.ID.String(),
		"type", event.Type,
		"detail", event.Detail,
		"session_id", event.SessionID,
	)

	r.mu.Lock()
	r.buffer = append(r.buffer, event)
	r.mu.Unlock()

	if event.Critical() && r.events != nil {
		if err := r.events.Append(ctx, event); err != nil {
			log.Error("failed to persist security event", "error", err)
		}
	}
}

// Buffered returns a copy of the events recorded since the session started.
func (r *Recorder) Buffered() []domain.SecurityEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.SecurityEvent, len(r.buffer))
	copy(out, r.buffer)
	return out
}

func (r *Recorder) reset() {
	r.mu.Lock()
	r.buffer = nil
	r.mu.Unlock()
}
