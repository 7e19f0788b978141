package database

import (
	"context"
	"sync"
)

// MemoryStore keeps profiles in process memory. Data is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, profile, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.profiles[profile][key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryStore) Set(_ context.Context, profile, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := s.profiles[profile]
	if !ok {
		keys = make(map[string][]byte)
		s.profiles[profile] = keys
	}
	keys[key] = v
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, profile, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles[profile], key)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, profile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, profile)
	return nil
}
