package sqlite

import (
	"context"
	"database/sql"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/store"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/cryptox"

	_ "modernc.org/sqlite"
)

// Store is the sqlite-backed state database. Bearer tokens are sealed with
// the provided Sealer before they touch disk.
type Store struct {
	db     *sql.DB
	sealer *cryptox.Sealer
	dsn    string
}

func NewStore(dsn string, sealer *cryptox.Sealer) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		sealer: sealer,
		dsn:    dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Credentials() store.Credentials {
	return &credentialsRepo{db: s.db, sealer: s.sealer}
}

func (s *Store) SecurityEvents() store.SecurityEvents {
	return &securityEventsRepo{db: s.db}
}
