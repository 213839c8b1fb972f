package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/store"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/cryptox"
)

type credentialsRepo struct {
	db     *sql.DB
	sealer *cryptox.Sealer
}

func (r *credentialsRepo) Set(ctx context.Context, cred domain.Credential) error {
	sealed, err := r.sealer.Seal([]byte(cred.Token))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO credentials (name, token_sealed, expires_at, secure, same_site)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			token_sealed = excluded.token_sealed,
			expires_at   = excluded.expires_at,
			secure       = excluded.secure,
			same_site    = excluded.same_site
	`, domain.CredentialName, sealed, cred.ExpiresAt.UTC(), cred.Secure, int(cred.SameSite))
	return err
}

func (r *credentialsRepo) Get(ctx context.Context, now time.Time) (domain.Credential, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT token_sealed, expires_at, secure, same_site
		FROM credentials WHERE name = ?
	`, domain.CredentialName)

	var (
		sealed    []byte
		expiresAt time.Time
		secure    bool
		sameSite  int
	)
	if err := row.Scan(&sealed, &expiresAt, &secure, &sameSite); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Credential{}, store.ErrNotFound
		}
		return domain.Credential{}, err
	}

	cred := domain.Credential{
		ExpiresAt: expiresAt,
		Secure:    secure,
		SameSite:  http.SameSite(sameSite),
	}

	// Passive expiry: an expired credential reads as absent.
	if cred.Expired(now) {
		_ = r.Remove(ctx)
		return domain.Credential{}, store.ErrNotFound
	}

	token, err := r.sealer.Open(sealed)
	if err != nil {
		return domain.Credential{}, err
	}
	cred.Token = string(token)

	return cred, nil
}

func (r *credentialsRepo) Remove(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE name = ?`, domain.CredentialName)
	return err
}
