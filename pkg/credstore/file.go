package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/aussiebroadwan/minipost/pkg/cryptox"
)

const fileBackend = "file"

// FileStore persists the credential as a small JSON document. When a Sealer
// is configured the document is encrypted at rest.
type FileStore struct {
	path   string
	sealer *cryptox.Sealer

	mu sync.Mutex
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithSealer encrypts the file with s.
func WithSealer(s *cryptox.Sealer) FileOption {
	return func(f *FileStore) { f.sealer = s }
}

// NewFileStore returns a store backed by path. The file and its directory are
// created on first Save.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	f := &FileStore{path: path}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the file location.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(ctx context.Context) (Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return Credential{}, wrapErr(fileBackend, "load", err)
	}
	return fromEntries(entries), nil
}

func (f *FileStore) Save(ctx context.Context, cred Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := make(map[string]string, 2)
	for k, v := range cred.entries() {
		if v != "" {
			entries[k] = v
		}
	}

	if len(entries) == 0 {
		return wrapErr(fileBackend, "save", f.remove())
	}
	return wrapErr(fileBackend, "save", f.write(entries))
}

func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return wrapErr(fileBackend, "clear", f.remove())
}

func (f *FileStore) Close() error { return nil }

func (f *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if f.sealer != nil {
		if data, err = f.sealer.Open(data); err != nil {
			return nil, fmt.Errorf("unseal credentials: %w", err)
		}
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return entries, nil
}

// write replaces the file atomically via a temp file in the same directory.
func (f *FileStore) write(entries map[string]string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	if f.sealer != nil {
		if data, err = f.sealer.Seal(data); err != nil {
			return fmt.Errorf("seal credentials: %w", err)
		}
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op once renamed

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, f.path)
}

func (f *FileStore) remove() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
