// Package memorystore implements storage.Store in a purely in-memory manner.
package memorystore

import (
	"sync"

	"github.com/plumekv/plume/storage"
)

// New returns a store that provides transient, in-memory storage.
func New() storage.Store {
	return &store{
		data: map[string][]byte{},
	}
}

type store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

func (s *store) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, storage.ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[string(key)]
	if !ok {
		return nil, storage.ErrNotFound
	}

	// Copied so callers and hook handlers can mutate the returned buffer
	// without corrupting the stored value.
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *store) Save(key, value []byte) error {
	if len(key) == 0 {
		return storage.ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	s.data[string(key)] = v
	return nil
}

func (s *store) Delete(key []byte) error {
	if len(key) == 0 {
		return storage.ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[string(key)]; !ok {
		return storage.ErrNotFound
	}
	delete(s.data, string(key))
	return nil
}
