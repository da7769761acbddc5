package storage

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps artifacts in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string][]byte)}
}

// Put saves an artifact.
func (s *MemoryStore) Put(name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.files[name] = buf
	s.mu.Unlock()
	return nil
}

// Get returns an artifact's content.
func (s *MemoryStore) Get(name string) ([]byte, error) {
	s.mu.RLock()
	data, ok := s.files[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, nil
}

// Delete removes an artifact if present.
func (s *MemoryStore) Delete(name string) error {
	s.mu.Lock()
	delete(s.files, name)
	s.mu.Unlock()
	return nil
}

// List returns all artifact names, sorted.
func (s *MemoryStore) List() ([]string, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}
