// Package credstore persists the session credential (access token and refresh
// token) across process restarts.
//
// Every backend follows the same rules: an empty token in Save removes that
// entry instead of storing a placeholder, Load on an empty store returns the
// zero Credential, and failures come back as *StorageError rather than
// panics so session logic can keep running in memory.
package credstore

import (
	"context"
	"errors"
	"fmt"
)

// Well-known keys the tokens are stored under.
const (
	KeyAccessToken  = "jwt"
	KeyRefreshToken = "refreshToken"
)

// ErrUnavailable reports that the backing storage can't be reached.
var ErrUnavailable = errors.New("credstore: storage unavailable")

// Credential is the persisted pair of tokens. Either may be empty.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

// IsZero reports whether neither token is present.
func (c Credential) IsZero() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// entries returns the key/value view of the credential; empty values mean
// "delete".
func (c Credential) entries() map[string]string {
	return map[string]string{
		KeyAccessToken:  c.AccessToken,
		KeyRefreshToken: c.RefreshToken,
	}
}

func fromEntries(m map[string]string) Credential {
	return Credential{
		AccessToken:  m[KeyAccessToken],
		RefreshToken: m[KeyRefreshToken],
	}
}

// Store is implemented by every credential backend.
type Store interface {
	// Load returns the persisted credential, or the zero value when nothing
	// is stored.
	Load(ctx context.Context) (Credential, error)

	// Save replaces the persisted credential. Empty fields clear their entry.
	Save(ctx context.Context, cred Credential) error

	// Clear removes every persisted entry.
	Clear(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// StorageError wraps a failure of a specific backend operation.
type StorageError struct {
	Op      string // "load", "save", "clear"
	Backend string // "memory", "file", "sqlite"
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("credstore: %s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func wrapErr(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Backend: backend, Err: err}
}
