package domain

// Record is a single todo item.
// Ids are assigned by the record store, start at zero and are never reused.
type Record struct {
	// ID is the sequential record identifier.
	ID uint64

	// Words are the description words, in input order.
	Words []string

	// Tags are the tag names without the leading '#', in input order.
	Tags []string

	// Done is set once the record has been marked done.
	Done bool
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	out.Words = append([]string(nil), r.Words...)
	out.Tags = append([]string(nil), r.Tags...)
	return out
}
