package domain

import (
	"net/http"
	"time"
)

// CredentialName is the persisted record name, matching the cookie the
// browser console stored the bearer token under.
const CredentialName = "auth_token"

// CredentialTTL bounds the credential lifetime. Expiry is passive: an
// expired credential is simply treated as absent, there is no refresh.
const CredentialTTL = 24 * time.Hour

// Credential is the persisted bearer token with its transport attributes.
type Credential struct {
	Token     string
	ExpiresAt time.Time
	Secure    bool
	SameSite  http.SameSite
}

// NewCredential builds a credential with the standard transport flags.
// expiresAt earlier than now+CredentialTTL wins, the TTL otherwise.
func NewCredential(token string, now, expiresAt time.Time) Credential {
	capped := now.Add(CredentialTTL)
	if expiresAt.IsZero() || expiresAt.After(capped) {
		expiresAt = capped
	}

	return Credential{
		Token:     token,
		ExpiresAt: expiresAt,
		Secure:    true,
		SameSite:  http.SameSiteStrictMode,
	}
}

// Expired reports whether the credential is past its lifetime.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}
