// Package index provides the registry of search index strategies.
//
// Each strategy lives in its own sub-package and is registered here:
//
//   - trie: depth-pruned subsequence trie (default)
//   - scan: linear scan over the stored strings
package index

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/swamp/internal/adapters/driven/index/scan"
	"github.com/custodia-labs/swamp/internal/adapters/driven/index/trie"
	"github.com/custodia-labs/swamp/internal/core/domain"
	"github.com/custodia-labs/swamp/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.IndexFactory = (*Factory)(nil)

// Factory creates search indexes by strategy name.
type Factory struct {
	mu       sync.RWMutex
	builders map[domain.IndexStrategy]driven.IndexBuilder
}

// NewFactory creates a factory with the built-in strategies registered.
func NewFactory() *Factory {
	f := &Factory{
		builders: make(map[domain.IndexStrategy]driven.IndexBuilder),
	}
	f.Register(domain.IndexStrategyTrie, trie.Builder)
	f.Register(domain.IndexStrategyScan, scan.Builder)
	return f
}

// Create returns an empty index for strategy.
func (f *Factory) Create(strategy domain.IndexStrategy, alphabet *domain.Alphabet) (driven.SearchIndex, error) {
	if alphabet == nil {
		return nil, fmt.Errorf("create %s index: nil alphabet: %w", strategy, domain.ErrInvalidInput)
	}
	f.mu.RLock()
	builder, ok := f.builders[strategy]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("index strategy %q: %w", strategy, domain.ErrUnsupportedType)
	}
	return builder(alphabet), nil
}

// Register adds or replaces the builder for strategy.
func (f *Factory) Register(strategy domain.IndexStrategy, builder driven.IndexBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[strategy] = builder
}

// SupportedStrategies returns the registered strategies in name order.
func (f *Factory) SupportedStrategies() []domain.IndexStrategy {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]domain.IndexStrategy, 0, len(f.builders))
	for s := range f.builders {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
