// Package scan provides a driven.SearchIndex that keeps the inserted strings
// per id and checks every one of them on each query with
// domain.IsSubsequence. It is the baseline the trie is measured against and
// the simplest index that is obviously correct.
package scan

import (
	"fmt"

	"github.com/custodia-labs/swamp/internal/core/domain"
	"github.com/custodia-labs/swamp/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SearchIndex = (*Index)(nil)

// Index is a linear-scan search index.
type Index struct {
	alphabet *domain.Alphabet
	values   map[uint64][]string
}

// New creates an empty scan index over alphabet.
func New(alphabet *domain.Alphabet) *Index {
	return &Index{
		alphabet: alphabet,
		values:   make(map[uint64][]string),
	}
}

// Builder adapts New to driven.IndexBuilder.
func Builder(alphabet *domain.Alphabet) driven.SearchIndex {
	return New(alphabet)
}

// Add stores values for id, skipping strings already stored for it.
func (x *Index) Add(id uint64, values []string) error {
	for _, v := range values {
		for _, r := range v {
			if !x.alphabet.Contains(r) {
				return fmt.Errorf("index record %d: %q contains symbol %q outside the alphabet: %w",
					id, v, r, domain.ErrInvalidInput)
			}
		}
	}
	if len(values) == 0 {
		return nil
	}
	stored := x.values[id]
	for _, v := range values {
		if !contains(stored, v) {
			stored = append(stored, v)
		}
	}
	x.values[id] = stored
	return nil
}

// Search checks every candidate id against every query.
func (x *Index) Search(queries []string, filter domain.IDSet) domain.IDSet {
	out := domain.NewIDSet()
	if len(queries) == 0 {
		return out
	}
	match := func(id uint64) {
		values, ok := x.values[id]
		if !ok {
			return
		}
		for _, q := range queries {
			if !domain.AnySubsequence(values, q) {
				return
			}
		}
		out.Add(id)
	}

	if filter != nil && len(filter) < len(x.values) {
		for id := range filter {
			match(id)
		}
		return out
	}
	for id := range x.values {
		if filter == nil || filter.Contains(id) {
			match(id)
		}
	}
	return out
}

// Delete forgets id.
func (x *Index) Delete(id uint64) {
	delete(x.values, id)
}

// Len returns the number of ids currently indexed.
func (x *Index) Len() int {
	return len(x.values)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
