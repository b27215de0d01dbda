package credstore

import (
	"context"
	"sync"
)

// MemoryStore keeps the credential in process memory. It never fails and
// never survives a restart; tests and "don't remember me" runs use it.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (m *MemoryStore) Load(ctx context.Context) (Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fromEntries(m.entries), nil
}

func (m *MemoryStore) Save(ctx context.Context, cred Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range cred.entries() {
		if v == "" {
			delete(m.entries, k)
			continue
		}
		m.entries[k] = v
	}
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
	return nil
}

// Len returns the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MemoryStore) Close() error { return nil }
