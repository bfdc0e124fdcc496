package store

import (
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Adapter for tests and for running without
// durable persistence. Failures can be injected to exercise the
// write-failure path.
type MemoryStore struct {
	mu      sync.Mutex
	rec     *Record
	saves   int
	FailOps bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailOps {
		return nil, fmt.Errorf("store unavailable")
	}
	if s.rec == nil {
		return nil, fmt.Errorf("no persisted state")
	}
	cp := *s.rec
	return &cp, nil
}

func (s *MemoryStore) Save(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailOps {
		return fmt.Errorf("store unavailable")
	}
	if rec == nil {
		return fmt.Errorf("record is nil")
	}
	cp := *rec
	s.rec = &cp
	s.saves++
	return nil
}

// Seed installs a record as if it had been persisted by a previous run.
func (s *MemoryStore) Seed(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = &rec
}

// Saves returns how many successful saves have happened.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
