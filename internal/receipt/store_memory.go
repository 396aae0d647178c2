package receipt

import (
	"context"
	"sync"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string]Receipt
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string]Receipt{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Create(ctx context.Context, r Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m[r.ID]; ok {
		return ErrReceiptExists
	}
	r.Lines = append([]Line(nil), r.Lines...)
	s.m[r.ID] = r
	return nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Receipt, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.m[id]
	if !ok {
		return Receipt{}, false, nil
	}
	r.Lines = append([]Line(nil), r.Lines...)
	return r, true, nil
}
