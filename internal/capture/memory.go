package capture

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore implements the Store interface with an in-memory map.
// Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	seq    int
	order  []string
	byID   map[string]*Exchange
	closed bool
}

// NewMemoryStore creates a new in-memory capture store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]*Exchange),
	}
}

// Put stores an exchange and assigns its ID
func (s *MemoryStore) Put(_ context.Context, exchange *Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	s.seq++
	exchange.ID = fmt.Sprintf("exchange:%d", s.seq)
	if exchange.CreatedAt.IsZero() {
		exchange.CreatedAt = time.Now()
	}

	stored := *exchange
	s.byID[stored.ID] = &stored
	s.order = append(s.order, stored.ID)
	return nil
}

// Get returns a single exchange by ID
func (s *MemoryStore) Get(_ context.Context, id string) (*Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	exchange, ok := s.byID[id]
	if !ok {
		return nil, ErrExchangeNotFound
	}
	result := *exchange
	return &result, nil
}

// List returns all stored exchanges in insertion order
func (s *MemoryStore) List(_ context.Context) ([]*Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	result := make([]*Exchange, 0, len(s.order))
	for _, id := range s.order {
		exchange := *s.byID[id]
		result = append(result, &exchange)
	}
	return result, nil
}

// ListByName returns all exchanges for a queried domain name
func (s *MemoryStore) ListByName(_ context.Context, name string) ([]*Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var result []*Exchange
	for _, id := range s.order {
		if s.byID[id].Name == name {
			exchange := *s.byID[id]
			result = append(result, &exchange)
		}
	}
	return result, nil
}

// Close closes the store
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.byID = nil
	s.order = nil
	return nil
}
