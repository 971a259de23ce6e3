package driving

import (
	"context"

	"github.com/custodia-labs/swamp/internal/core/domain"
)

// TodoService is the record store and search index seen as one unit.
type TodoService interface {
	// Add stores a record and indexes its words and tags.
	// Returns ErrInvalidInput if the description is empty or a word or tag
	// holds a symbol outside the alphabet.
	Add(ctx context.Context, words, tags []string) (domain.Record, error)

	// Done marks a record done and removes it from search.
	// Returns ErrNotFound for unknown ids.
	Done(ctx context.Context, id uint64) error

	// Search returns the live records matching every term, in id order.
	// Returns ErrInvalidInput if terms is empty.
	Search(ctx context.Context, terms []domain.Term) ([]domain.Record, error)
}
