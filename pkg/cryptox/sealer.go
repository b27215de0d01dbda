package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// ErrEmptyKey is returned when a Sealer is created without key material.
var ErrEmptyKey = errors.New("cryptox: empty key material")

// Sealer encrypts small blobs (persisted credentials) with AES-256-GCM. The
// AES key is derived from arbitrary key material with HKDF-SHA256 so users can
// supply a passphrase rather than exactly 32 random bytes.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 32-byte key from keyMaterial, bound to the purpose
// string info, and returns a Sealer using it.
func NewSealer(keyMaterial []byte, info string) (*Sealer, error) {
	if len(keyMaterial) == 0 {
		return nil, ErrEmptyKey
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, keyMaterial, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Sealer{aead: gcm}, nil
}

// Seal encrypts plaintext. The output format is:
// [12-byte nonce][encrypted data][16-byte auth tag]
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// gcm.Seal appends the ciphertext and auth tag to nonce
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts data produced by Seal.
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
