// Package input provides the command line input component for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/swamp/internal/adapters/driving/tui/styles"
)

// maxRecall bounds how many submitted lines are kept for recall.
const maxRecall = 500

// CommandInput wraps a bubbles textinput with a prompt and line recall.
type CommandInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int

	// recall holds submitted lines, oldest first.
	recall []string

	// cursor indexes recall while browsing. len(recall) means the draft.
	cursor int

	// draft keeps what was typed before browsing started.
	draft string
}

// NewCommandInput creates a focused command input.
func NewCommandInput(s *styles.Styles) *CommandInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = s.Prompt
	ti.Placeholder = `add "buy milk" #errand`
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 60

	return &CommandInput{
		textinput: ti,
		styles:    s,
		width:     60,
	}
}

// Init initialises the input.
func (c *CommandInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (c *CommandInput) Update(msg tea.Msg) (*CommandInput, tea.Cmd) {
	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)
	return c, cmd
}

// View renders the input.
func (c *CommandInput) View() string {
	return c.styles.InputField.Render(c.textinput.View())
}

// Value returns the current input value.
func (c *CommandInput) Value() string {
	return c.textinput.Value()
}

// SetValue sets the input value and moves the cursor to the end.
func (c *CommandInput) SetValue(value string) {
	c.textinput.SetValue(value)
	c.textinput.CursorEnd()
}

// Submit clears the input and returns its value. Non-empty values are
// remembered for recall, skipping immediate repeats.
func (c *CommandInput) Submit() string {
	line := c.textinput.Value()
	if line != "" && (len(c.recall) == 0 || c.recall[len(c.recall)-1] != line) {
		c.recall = append(c.recall, line)
		if len(c.recall) > maxRecall {
			c.recall = c.recall[len(c.recall)-maxRecall:]
		}
	}
	c.cursor = len(c.recall)
	c.draft = ""
	c.textinput.Reset()
	return line
}

// Previous replaces the input with the previous remembered line.
func (c *CommandInput) Previous() {
	if c.cursor == 0 {
		return
	}
	if c.cursor == len(c.recall) {
		c.draft = c.textinput.Value()
	}
	c.cursor--
	c.SetValue(c.recall[c.cursor])
}

// Next replaces the input with the next remembered line, or the draft
// once past the newest.
func (c *CommandInput) Next() {
	if c.cursor >= len(c.recall) {
		return
	}
	c.cursor++
	if c.cursor == len(c.recall) {
		c.SetValue(c.draft)
		return
	}
	c.SetValue(c.recall[c.cursor])
}

// Recall returns the remembered lines, oldest first.
func (c *CommandInput) Recall() []string {
	out := make([]string, len(c.recall))
	copy(out, c.recall)
	return out
}

// Focus sets focus on the input.
func (c *CommandInput) Focus() tea.Cmd {
	return c.textinput.Focus()
}

// Blur removes focus from the input.
func (c *CommandInput) Blur() {
	c.textinput.Blur()
}

// Focused returns whether the input is focused.
func (c *CommandInput) Focused() bool {
	return c.textinput.Focused()
}

// SetWidth sets the width of the input.
func (c *CommandInput) SetWidth(width int) {
	c.width = width
	// Account for border, padding and prompt
	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	c.textinput.Width = inputWidth
}

// Width returns the current width.
func (c *CommandInput) Width() int {
	return c.width
}
