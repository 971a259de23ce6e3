package driven

import "github.com/custodia-labs/swamp/internal/core/domain"

// IndexBuilder creates an empty SearchIndex over the given alphabet.
type IndexBuilder func(alphabet *domain.Alphabet) SearchIndex

// IndexFactory creates search indexes from configuration.
// It maintains a registry of strategies and their builders.
type IndexFactory interface {
	// Create returns an empty SearchIndex for the configured strategy.
	// Returns ErrUnsupportedType if the strategy is unknown.
	Create(strategy domain.IndexStrategy, alphabet *domain.Alphabet) (SearchIndex, error)

	// Register adds a builder for the given strategy.
	Register(strategy domain.IndexStrategy, builder IndexBuilder)

	// SupportedStrategies returns all registered strategies.
	SupportedStrategies() []domain.IndexStrategy
}
