package store

import "sync"

// MemoryStore keeps the disabled list in memory.
type MemoryStore struct {
	mu  sync.Mutex
	ids []string
}

func NewMemoryStore(ids ...string) *MemoryStore {
	return &MemoryStore{ids: dedupe(ids)}
}

func (s *MemoryStore) Get() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.ids...), nil
}

func (s *MemoryStore) Set(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = dedupe(ids)
	return nil
}
