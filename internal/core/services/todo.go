package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/swamp/internal/core/domain"
	"github.com/custodia-labs/swamp/internal/core/ports/driven"
	"github.com/custodia-labs/swamp/internal/core/ports/driving"
	"github.com/custodia-labs/swamp/internal/logger"
)

// Ensure TodoService implements the interface.
var _ driving.TodoService = (*TodoService)(nil)

// TodoService combines the record store with the field indexes.
type TodoService struct {
	// mu serialises every call. Index searches reuse per-index scratch
	// buffers, so even searches cannot run in parallel.
	mu     sync.Mutex
	store  driven.RecordStore
	index  *FieldIndex
	engine *SearchEngine
}

// NewTodoService creates a new todo service.
func NewTodoService(store driven.RecordStore, index *FieldIndex, engine *SearchEngine) *TodoService {
	return &TodoService{
		store:  store,
		index:  index,
		engine: engine,
	}
}

// Add stores a record and indexes its words and tags.
func (s *TodoService) Add(ctx context.Context, words, tags []string) (domain.Record, error) {
	if len(words) == 0 {
		return domain.Record{}, fmt.Errorf("add: empty description: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Validate(words, tags); err != nil {
		return domain.Record{}, fmt.Errorf("add: %w", err)
	}

	r, err := s.store.Append(ctx, words, tags)
	if err != nil {
		return domain.Record{}, fmt.Errorf("add: %w", err)
	}
	if err := s.index.Add(r); err != nil {
		return domain.Record{}, fmt.Errorf("add: index record %d: %w", r.ID, err)
	}

	logger.Debug("Added record %d: %d word(s), %d tag(s)", r.ID, len(r.Words), len(r.Tags))
	return r, nil
}

// Done marks a record done and removes it from both indexes.
func (s *TodoService) Done(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.MarkDone(ctx, id); err != nil {
		return fmt.Errorf("done: %w", err)
	}
	s.index.Delete(id)

	logger.Debug("Marked record %d done", id)
	return nil
}

// Search returns the live records matching every term, in id order.
func (s *TodoService) Search(ctx context.Context, terms []domain.Term) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.engine.Evaluate(terms)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if ids.Len() == 0 {
		return []domain.Record{}, nil
	}

	records, err := s.store.Get(ctx, ids.Sorted(), false)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Debug("Search %v matched %d id(s), %d live record(s)", terms, ids.Len(), len(records))
	return records, nil
}
