package memstore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/embedpay/checkout-client/internal/adapters/ports"
)

// Store is an in-memory ports.Storage. It stands in for the host
// environment's persistent storage in tests and the demo binary; real
// embedders supply their own backing store.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New creates an empty store
func New() *Store {
	return &Store{
		values: make(map[string][]byte),
	}
}

// Get decodes the value at key into v, reporting whether the key exists
func (s *Store) Get(key string, v any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decode stored value at %q: %w", key, err)
	}
	return true, nil
}

// Set stores the JSON encoding of v at key
func (s *Store) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", key, err)
	}
	s.mu.Lock()
	s.values[key] = raw
	s.mu.Unlock()
	return nil
}

// Remove deletes the key if present
func (s *Store) Remove(key string) {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
}

// namespacedStore prefixes every key with a fixed namespace
type namespacedStore struct {
	inner     ports.Storage
	namespace string
}

// Namespaced wraps a storage so all keys are scoped as "<namespace>.<key>"
func Namespaced(inner ports.Storage, namespace string) ports.Storage {
	return &namespacedStore{
		inner:     inner,
		namespace: namespace,
	}
}

func (n *namespacedStore) key(key string) string {
	return n.namespace + "." + key
}

func (n *namespacedStore) Get(key string, v any) (bool, error) {
	return n.inner.Get(n.key(key), v)
}

func (n *namespacedStore) Set(key string, v any) error {
	return n.inner.Set(n.key(key), v)
}

func (n *namespacedStore) Remove(key string) {
	n.inner.Remove(n.key(key))
}
