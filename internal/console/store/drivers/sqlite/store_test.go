package sqlite

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/store"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/cryptox"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	sealer, err := cryptox.NewSealer([]byte("test-master-key"))
	require.NoError(t, err)

	s, err := NewStore(filepath.Join(t.TempDir(), "console.db"), sealer)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestCredentialRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	cred := domain.NewCredential("bearer-token-value", now, time.Time{})
	require.NoError(t, s.Credentials().Set(ctx, cred))

	got, err := s.Credentials().Get(ctx, now)
	require.NoError(t, err)
	require.Equal(t, "bearer-token-value", got.Token)
	require.True(t, got.Secure)
	require.Equal(t, http.SameSiteStrictMode, got.SameSite)
	require.WithinDuration(t, now.Add(domain.CredentialTTL), got.ExpiresAt, time.Second)
}

func TestCredentialAbsent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Credentials().Get(ctx, time.Now())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCredentialPassiveExpiry(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.Credentials().Set(ctx, domain.NewCredential("tok", now, time.Time{})))

	// Past the TTL the credential reads as absent, and stays absent.
	later := now.Add(domain.CredentialTTL + time.Minute)
	_, err := s.Credentials().Get(ctx, later)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Credentials().Get(ctx, now)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCredentialSetReplaces(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.Credentials().Set(ctx, domain.NewCredential("first", now, time.Time{})))
	require.NoError(t, s.Credentials().Set(ctx, domain.NewCredential("second", now, time.Time{})))

	got, err := s.Credentials().Get(ctx, now)
	require.NoError(t, err)
	require.Equal(t, "second", got.Token)
}

func TestCredentialRemoveIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Credentials().Remove(ctx))
	require.NoError(t, s.Credentials().Set(ctx, domain.NewCredential("tok", time.Now(), time.Time{})))
	require.NoError(t, s.Credentials().Remove(ctx))
	require.NoError(t, s.Credentials().Remove(ctx))

	_, err := s.Credentials().Get(ctx, time.Now())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTokenSealedAtRest(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Credentials().Set(ctx, domain.NewCredential("super-secret-bearer", time.Now(), time.Time{})))

	var raw []byte
	row := s.db.QueryRowContext(ctx, `SELECT token_sealed FROM credentials`)
	require.NoError(t, row.Scan(&raw))
	require.NotContains(t, string(raw), "super-secret-bearer")
}

func TestSecurityEventsAppendAndRecent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	for i, typ := range []string{domain.EventUnauthorized, domain.EventOriginRejected, domain.EventStateCorrupted} {
		ev := domain.SecurityEvent{
			ID:        idx.NewAt(base.Add(time.Duration(i) * time.Second)),
			Type:      typ,
			Detail:    "detail",
			SessionID: "abc123",
			At:        base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, s.SecurityEvents().Append(ctx, ev))
	}

	events, err := s.SecurityEvents().Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, domain.EventStateCorrupted, events[0].Type, "newest first")
	require.Equal(t, domain.EventOriginRejected, events[1].Type)
}
