package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// FingerprintToken returns a short, deterministic SHA-256 fingerprint of a
// token. Logs carry the fingerprint so two log lines can be correlated to the
// same credential without ever writing the bearer value itself.
func FingerprintToken(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])[:12]
}
