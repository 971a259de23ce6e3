// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/swamp/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/swamp/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateRunning State = "running"
	StateDone    State = "done"
	StateError   State = "error"
)

// Bar displays the outcome of the last command and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	commands int
	failures int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// Content must fit inside the style's own padding or it wraps.
	avail := s.width - s.styles.StatusBar.GetHorizontalFrameSize()
	padding := avail - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		right = ""
		padding = avail - lipgloss.Width(left)
	}
	if padding < 0 {
		padding = 0
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state and session counters.
func (s *Bar) renderLeft() string {
	counts := fmt.Sprintf("%d ok, %d failed", s.commands, s.failures)
	switch s.state {
	case StateRunning:
		return s.styles.Muted.Render("Running...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: "+s.message) + s.styles.Muted.Render(" · "+counts)
		}
		return s.styles.Error.Render("Error") + s.styles.Muted.Render(" · "+counts)
	case StateDone:
		if s.message != "" {
			return s.styles.Count.Render(s.message) + s.styles.Muted.Render(" · "+counts)
		}
	case StateReady:
	}
	return s.styles.Muted.Render("Ready · " + counts)
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// Running marks a command as in flight.
func (s *Bar) Running() {
	s.state = StateRunning
	s.message = ""
}

// Succeeded records a successful command and its one-line summary.
func (s *Bar) Succeeded(summary string) {
	s.commands++
	s.state = StateDone
	s.message = summary
}

// Failed records a failed command.
func (s *Bar) Failed(err error) {
	s.failures++
	s.state = StateError
	s.message = ""
	if err != nil {
		s.message = err.Error()
	}
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// Commands returns how many commands succeeded.
func (s *Bar) Commands() int {
	return s.commands
}

// Failures returns how many commands failed.
func (s *Bar) Failures() int {
	return s.failures
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its initial state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.commands = 0
	s.failures = 0
}
