package lineproto

import "github.com/custodia-labs/swamp/internal/core/domain"

// Op identifies a command.
type Op int

// Available commands.
const (
	OpAdd Op = iota
	OpDone
	OpSearch
)

// String returns the command name as written on a line.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpDone:
		return "done"
	case OpSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Command is one parsed input line.
type Command struct {
	Op Op

	// Words and Tags are set for OpAdd.
	Words []string
	Tags  []string

	// ID is set for OpDone.
	ID uint64

	// Terms are set for OpSearch.
	Terms []domain.Term
}
