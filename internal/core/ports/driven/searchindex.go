package driven

import "github.com/custodia-labs/swamp/internal/core/domain"

// SearchIndex answers subsequence queries over the strings inserted for
// each record id. One instance serves one record field (words or tags).
//
// Implementations are not safe for concurrent use; callers serialise
// writes and must not search while a write is in progress.
type SearchIndex interface {
	// Add inserts strings for id. Calling it again for the same id adds
	// to what is already indexed; re-inserting a string is a no-op.
	// Returns ErrInvalidInput if a string holds a symbol outside the
	// alphabet, in which case nothing is inserted.
	Add(id uint64, values []string) error

	// Search returns the ids for which every query is a subsequence of at
	// least one inserted string. A non-nil filter restricts the result to
	// its ids. No queries yields an empty set.
	Search(queries []string, filter domain.IDSet) domain.IDSet

	// Delete removes id from the index. Deleting an absent id is a no-op.
	Delete(id uint64)

	// Len returns the number of ids currently indexed.
	Len() int
}
