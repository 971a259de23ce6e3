package services

import (
	"fmt"

	"github.com/custodia-labs/swamp/internal/core/domain"
	"github.com/custodia-labs/swamp/internal/logger"
)

// SearchEngine evaluates multi-term queries against a FieldIndex.
type SearchEngine struct {
	index     *FieldIndex
	propagate bool
}

// NewSearchEngine creates a search engine over index. With propagate set,
// tag terms are searched with the ids matched by the word terms as filter.
func NewSearchEngine(index *FieldIndex, propagate bool) *SearchEngine {
	return &SearchEngine{
		index:     index,
		propagate: propagate,
	}
}

// Evaluate returns the ids matching every term.
// Word terms are evaluated before tag terms.
func (e *SearchEngine) Evaluate(terms []domain.Term) (domain.IDSet, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("search needs at least one term: %w", domain.ErrInvalidInput)
	}

	words, tags := domain.PartitionTerms(terms)
	logger.Debug("Evaluating %d word term(s), %d tag term(s)", len(words), len(tags))

	if len(tags) == 0 {
		defer logger.Timed("word search")()
		return e.index.Words().Search(words, nil), nil
	}
	if len(words) == 0 {
		defer logger.Timed("tag search")()
		return e.index.Tags().Search(tags, nil), nil
	}

	done := logger.Timed("word search")
	wordIDs := e.index.Words().Search(words, nil)
	done()
	if wordIDs.Len() == 0 {
		return wordIDs, nil
	}

	var filter domain.IDSet
	if e.propagate {
		filter = wordIDs
	}

	done = logger.Timed("tag search")
	tagIDs := e.index.Tags().Search(tags, filter)
	done()

	return wordIDs.Intersect(tagIDs), nil
}
