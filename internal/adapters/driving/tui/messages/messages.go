// Package messages defines Bubbletea message types for the TUI.
package messages

// CommandSubmitted is sent when the user submits an input line.
type CommandSubmitted struct {
	Line string
}

// CommandCompleted carries the outcome of a command back to the model.
type CommandCompleted struct {
	Line   string
	Output string
	Err    error
}

// Failed reports whether the command returned an error.
func (c CommandCompleted) Failed() bool {
	return c.Err != nil
}
