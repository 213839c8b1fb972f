package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for deriving the sealing key from master key material.
const (
	kdfIterations  = 1
	kdfMemory      = 64 * 1024 // KiB
	kdfParallelism = 4
	kdfKeyLength   = 32 // AES-256
)

// kdfContext domain-separates the derived key from any other use of the
// same master material.
const kdfContext = "updevic-console/credential-sealer/v1"

// Sealer provides authenticated encryption for the bearer token persisted in
// the local state database. The output format is:
// [12-byte nonce][ciphertext][16-byte auth tag].
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives an AES-256 key from the master key material using
// Argon2id and returns a Sealer ready for use.
func NewSealer(master []byte) (*Sealer, error) {
	if len(master) == 0 {
		return nil, fmt.Errorf("master key material is empty")
	}

	key := argon2.IDKey(master, []byte(kdfContext), kdfIterations, kdfMemory, kdfParallelism, kdfKeyLength)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// Seal encrypts and authenticates plaintext with a random nonce per call.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts data produced by Seal, verifying the authentication tag.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return plaintext, nil
}

// LoadMasterKey loads master key material from, in order of preference:
//  1. the file at path (if path is non-empty)
//  2. the CONSOLE_MASTER_KEY environment variable
//  3. a freshly generated ephemeral value (development only: sealed
//     credentials will not survive a restart)
func LoadMasterKey(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read master key file: %w", err)
		}
		return data, nil
	}

	if env := os.Getenv("CONSOLE_MASTER_KEY"); env != "" {
		return []byte(env), nil
	}

	ephemeral := make([]byte, 32)
	if _, err := rand.Read(ephemeral); err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral master key: %w", err)
	}
	return ephemeral, nil
}
