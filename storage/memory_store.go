package storage

import "sync"

// MemoryStore adalah Store in-memory, dipakai di test dan sebagai fallback
// kalau database lokal tidak bisa dibuka.
type MemoryStore struct {
	mutex sync.RWMutex
	data  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	value, found := s.data[key]
	return value, found, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data[key] = value
	return nil
}
