// Package memory holds documents in a process-local map. Used by tests and
// by the demo configuration; contents vanish with the process.
package memory

import (
	"context"
	"sort"
	"sync"

	"tasty-table/internal/storage"
)

type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func New() *Store {
	return &Store{docs: make(map[string][]byte)}
}

func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[key]
	if !ok {
		return nil, storage.ErrNoKey
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, nil
}

func (s *Store) Save(_ context.Context, key string, value []byte) error {
	doc := make([]byte, len(value))
	copy(doc, value)
	s.mu.Lock()
	s.docs[key] = doc
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.docs, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
