package storage

import (
	"context"
	"slices"
	"strings"
	"sync"

	"swapers-hq/lpmon/pkg/provider"
)

// MemoryStore is a thread-safe in-memory Store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]provider.Record
	closed  bool
}

// NewMemoryStore creates a store holding records.
func NewMemoryStore(records ...provider.Record) *MemoryStore {
	s := &MemoryStore{records: make(map[string]provider.Record, len(records))}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (s *MemoryStore) ListProviders(ctx context.Context) ([]provider.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, NewStorageError("memory", "list", errStoreClosed)
	}

	out := make([]provider.Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b provider.Record) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *MemoryStore) GetProvider(ctx context.Context, id string) (provider.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return provider.Record{}, ErrNotFound
	}
	return r, nil
}

func (s *MemoryStore) PutProvider(ctx context.Context, rec provider.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return NewStorageError("memory", "put", errStoreClosed)
	}
	s.records[rec.ID] = rec
	return nil
}

func (s *MemoryStore) EnsureProvider(ctx context.Context, rec provider.Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, NewStorageError("memory", "ensure", errStoreClosed)
	}
	if _, ok := s.records[rec.ID]; ok {
		return false, nil
	}
	s.records[rec.ID] = rec
	return true, nil
}

func (s *MemoryStore) SetAvailability(ctx context.Context, id string, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return NewStorageError("memory", "set_availability", errStoreClosed)
	}
	r, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	r.IsAvailable = available
	s.records[id] = r
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
