// Package memory provides in-memory implementations of driven ports.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/swamp/internal/core/domain"
	"github.com/custodia-labs/swamp/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// Records live in an append-only slice ordered by id.
type RecordStore struct {
	mu      sync.RWMutex
	records []domain.Record
	nextID  uint64
	closed  bool
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Append stores a new record with the next id.
func (s *RecordStore) Append(_ context.Context, words, tags []string) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.Record{}, domain.ErrStoreClosed
	}

	r := domain.Record{
		ID:    s.nextID,
		Words: append([]string(nil), words...),
		Tags:  append([]string(nil), tags...),
	}
	s.records = append(s.records, r)
	s.nextID++
	return r.Clone(), nil
}

// MarkDone flags the record with id as done.
func (s *RecordStore) MarkDone(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}

	i, ok := s.find(id)
	if !ok {
		return fmt.Errorf("record %d: %w", id, domain.ErrNotFound)
	}
	s.records[i].Done = true
	return nil
}

// Get returns the records with the given ids in ascending id order.
func (s *RecordStore) Get(_ context.Context, ids []uint64, includeDone bool) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}

	sorted := append([]uint64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	out := make([]domain.Record, 0, len(sorted))
	for k, id := range sorted {
		if k > 0 && sorted[k-1] == id {
			continue
		}
		i, ok := s.find(id)
		if !ok {
			continue
		}
		if s.records[i].Done && !includeDone {
			continue
		}
		out = append(out, s.records[i].Clone())
	}
	return out, nil
}

// Len returns the number of records ever appended.
func (s *RecordStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, domain.ErrStoreClosed
	}
	return len(s.records), nil
}

// Close drops all records. Further calls fail with ErrStoreClosed.
func (s *RecordStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.closed = true
	return nil
}

// find binary-searches the slice for id (caller must hold lock).
func (s *RecordStore) find(id uint64) (int, bool) {
	i := sort.Search(len(s.records), func(i int) bool { return s.records[i].ID >= id })
	if i < len(s.records) && s.records[i].ID == id {
		return i, true
	}
	return 0, false
}
