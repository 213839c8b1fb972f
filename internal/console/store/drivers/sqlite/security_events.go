package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/idx"
)

type securityEventsRepo struct {
	db *sql.DB
}

func (r *securityEventsRepo) Append(ctx context.Context, event domain.SecurityEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO security_events (id, type, detail, session_id, at)
		VALUES (?, ?, ?, ?, ?)
	`, event.ID.String(), event.Type, event.Detail, event.SessionID, event.At.UTC())
	return err
}

func (r *securityEventsRepo) Recent(ctx context.Context, limit int) ([]domain.SecurityEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, detail, session_id, at
		FROM security_events
		ORDER BY at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.SecurityEvent
	for rows.Next() {
		var (
			id string
			ev domain.SecurityEvent
			at time.Time
		)
		if err := rows.Scan(&id, &ev.Type, &ev.Detail, &ev.SessionID, &at); err != nil {
			return nil, err
		}
		ev.ID = idx.ID(id)
		ev.At = at
		events = append(events, ev)
	}
	return events, rows.Err()
}
