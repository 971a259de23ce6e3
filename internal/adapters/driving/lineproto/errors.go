package lineproto

import "fmt"

// LineError reports a command line that could not be parsed or executed.
type LineError struct {
	// Line is the 1-based input line number.
	Line int

	// Input is the offending line.
	Input string

	Err error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}
