package memory

import (
	"context"
	"sync"
)

// SecretStore is an in-process ports.SecretStore for development and tests.
// Nothing survives a restart, which also means Restore finds nothing.
type SecretStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSecretStore creates an empty in-memory secret store.
func NewSecretStore() *SecretStore {
	return &SecretStore{values: make(map[string]string)}
}

func (s *SecretStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *SecretStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *SecretStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
