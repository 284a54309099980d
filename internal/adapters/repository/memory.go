package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/pickup/internal/domain/model"
	"github.com/okian/pickup/pkg/metrics"
)

// MemoryStore is an in-process Store. Data is lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	table  model.Table
	closed bool
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{table: make(model.Table)}
}

// Seed merges table into the store.
func (s *MemoryStore) Seed(table model.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for player, rec := range table {
		for pos, byUser := range rec {
			for user, r := range byUser {
				s.table.Upsert(player, pos, user, r)
			}
		}
	}
}

// LoadAll returns a copy of the rating table.
func (s *MemoryStore) LoadAll(_ context.Context) (model.Table, error) {
	start := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		metrics.RecordStoreError("load_all")
		return nil, unavailable("memory.load_all", ErrClosed)
	}
	out := s.table.Clone()
	metrics.RecordStoreLatency("load_all", float64(time.Since(start).Microseconds())/1000)
	return out, nil
}

// Upsert sets one rating cell.
func (s *MemoryStore) Upsert(_ context.Context, player string, pos model.Position, user string, r model.Rating) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		metrics.RecordStoreError("upsert")
		return unavailable("memory.upsert", ErrClosed)
	}
	s.table.Upsert(player, pos, user, r)
	metrics.RecordStoreLatency("upsert", float64(time.Since(start).Microseconds())/1000)
	return nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
