package cryptox

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Size constants (in bytes before encoding).
const (
	// SessionIDSize provides 128 bits of entropy (32 hex chars).
	SessionIDSize = 16
	// CSRFTokenSize provides 256 bits of entropy (64 hex chars).
	CSRFTokenSize = 32
)

// RandomHex creates a cryptographically secure random value of the specified
// byte length, returned hex-encoded. Session ids use SessionIDSize and CSRF
// tokens use CSRFTokenSize.
func RandomHex(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("random size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random value: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// MustRandomHex is like RandomHex but panics on error. Use this only where
// failure of the system random source is unrecoverable anyway.
func MustRandomHex(size int) string {
	v, err := RandomHex(size)
	if err != nil {
		panic(fmt.Sprintf("cryptox: %v", err))
	}
	return v
}
