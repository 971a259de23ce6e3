package domain

import "fmt"

const unknownDescription = "Unknown"

// IndexStrategy selects the search index implementation.
type IndexStrategy string

// Available index strategies.
const (
	// IndexStrategyTrie is the depth-pruned subsequence trie.
	IndexStrategyTrie IndexStrategy = "trie"

	// IndexStrategyScan checks every stored string on every query.
	IndexStrategyScan IndexStrategy = "scan"
)

// IsValid returns true if the strategy is recognised.
func (s IndexStrategy) IsValid() bool {
	switch s {
	case IndexStrategyTrie, IndexStrategyScan:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s IndexStrategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s IndexStrategy) Description() string {
	switch s {
	case IndexStrategyTrie:
		return "Trie (depth-pruned subsequence trie)"
	case IndexStrategyScan:
		return "Scan (linear scan over stored strings)"
	default:
		return unknownDescription
	}
}

// StoreBackend selects the record store implementation.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendMemory keeps records in an append-only slice.
	StoreBackendMemory StoreBackend = "memory"

	// StoreBackendSQLite keeps records in a private in-memory SQLite database.
	StoreBackendSQLite StoreBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendMemory, StoreBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendMemory:
		return "Memory (append-only slice)"
	case StoreBackendSQLite:
		return "SQLite (in-memory database)"
	default:
		return unknownDescription
	}
}

// IndexSettings holds search index configuration.
type IndexSettings struct {
	// Strategy is the index implementation.
	Strategy IndexStrategy

	// Alphabet is the symbol set accepted in words, tags and queries.
	Alphabet string

	// PropagateFilter passes the ids matched by earlier terms into the
	// search of later terms so whole subtrees can be skipped.
	PropagateFilter bool
}

// StoreSettings holds record store configuration.
type StoreSettings struct {
	// Backend is the record store implementation.
	Backend StoreBackend
}

// InputSettings holds line input configuration.
type InputSettings struct {
	// Header indicates the first input line is a command count to skip.
	Header bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Index IndexSettings
	Store StoreSettings
	Input InputSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Index: IndexSettings{
			Strategy:        IndexStrategyTrie,
			Alphabet:        DefaultAlphabet,
			PropagateFilter: true,
		},
		Store: StoreSettings{
			Backend: StoreBackendMemory,
		},
		Input: InputSettings{
			Header: true,
		},
	}
}

// Validate checks that every setting holds a usable value.
func (s AppSettings) Validate() error {
	if !s.Index.Strategy.IsValid() {
		return fmt.Errorf("index strategy %q: %w", s.Index.Strategy, ErrUnsupportedType)
	}
	if !s.Store.Backend.IsValid() {
		return fmt.Errorf("store backend %q: %w", s.Store.Backend, ErrUnsupportedType)
	}
	if _, err := NewAlphabet(s.Index.Alphabet); err != nil {
		return fmt.Errorf("index alphabet: %w", err)
	}
	return nil
}

// AllIndexStrategies returns all available index strategies.
func AllIndexStrategies() []IndexStrategy {
	return []IndexStrategy{
		IndexStrategyTrie,
		IndexStrategyScan,
	}
}

// AllStoreBackends returns all available store backends.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{
		StoreBackendMemory,
		StoreBackendSQLite,
	}
}
