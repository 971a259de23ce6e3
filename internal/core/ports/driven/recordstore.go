package driven

import (
	"context"

	"github.com/custodia-labs/swamp/internal/core/domain"
)

// RecordStore holds records in insertion order.
// Ids are assigned sequentially from zero and never reused.
type RecordStore interface {
	// Append stores a new record and returns it with its assigned id.
	Append(ctx context.Context, words, tags []string) (domain.Record, error)

	// MarkDone flags a record as done.
	// Returns ErrNotFound if no record has the id. Marking a done record
	// again succeeds.
	MarkDone(ctx context.Context, id uint64) error

	// Get returns the records with the given ids in ascending id order.
	// Unknown ids are skipped; done records are skipped unless includeDone.
	Get(ctx context.Context, ids []uint64, includeDone bool) ([]domain.Record, error)

	// Len returns the number of records ever appended.
	Len(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
