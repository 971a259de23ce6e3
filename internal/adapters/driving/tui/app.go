package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/swamp/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/swamp/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/swamp/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/swamp/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/swamp/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/swamp/internal/logger"
)

// chromeHeight is the number of rows used by everything except the history.
const chromeHeight = 6

// entry is one submitted command and its outcome.
type entry struct {
	line   string
	output string
	err    error
}

// App is the interactive session following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to the core via driving ports.
	ports *Ports

	// ctx is passed to every executed command.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	input   *input.CommandInput
	status  *status.Bar
	history viewport.Model
	help    help.Model

	// entries holds the session transcript, oldest first.
	entries []entry

	// busy is set while a command is in flight. Submissions are ignored
	// until it completes so responses stay in submission order.
	busy bool

	// subtitle summarises the active settings.
	subtitle string

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:   ports,
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		input:   input.NewCommandInput(s),
		status:  status.NewBar(s, km),
		history: viewport.New(80, 24-chromeHeight),
		help:    help.New(),
	}
	a.subtitle = a.describeSettings()
	a.refresh()
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.input.Init(),
		tea.SetWindowTitle("swamp"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.CommandSubmitted:
		return a, a.submit(msg.Line)

	case messages.CommandCompleted:
		a.complete(msg)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKey routes key presses to app actions or the input.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keymap.Help):
		a.help.ShowAll = !a.help.ShowAll
		a.layout()
		return a, nil

	case key.Matches(msg, a.keymap.Clear):
		a.entries = nil
		a.status.Clear()
		a.refresh()
		return a, nil

	case key.Matches(msg, a.keymap.ScrollUp), key.Matches(msg, a.keymap.ScrollDown):
		a.history, cmd = a.history.Update(msg)
		return a, cmd

	case key.Matches(msg, a.keymap.Previous):
		a.input.Previous()
		return a, nil

	case key.Matches(msg, a.keymap.Next):
		a.input.Next()
		return a, nil

	case key.Matches(msg, a.keymap.Submit):
		if a.busy {
			return a, nil
		}
		line := a.input.Submit()
		return a, func() tea.Msg { return messages.CommandSubmitted{Line: line} }
	}

	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit starts executing line unless it is blank or a command is in flight.
func (a *App) submit(line string) tea.Cmd {
	if a.busy || strings.TrimSpace(line) == "" {
		return nil
	}
	a.busy = true
	a.status.Running()
	logger.Debug("TUI executing %q", line)
	return a.execute(line)
}

// execute runs line through the executor off the update loop.
func (a *App) execute(line string) tea.Cmd {
	ctx := a.ctx
	exec := a.ports.Executor
	return func() tea.Msg {
		out, err := exec.Execute(ctx, line)
		return messages.CommandCompleted{Line: line, Output: out, Err: err}
	}
}

// complete records a finished command.
func (a *App) complete(msg messages.CommandCompleted) {
	a.busy = false
	a.entries = append(a.entries, entry{line: msg.Line, output: msg.Output, err: msg.Err})
	if msg.Failed() {
		a.status.Failed(msg.Err)
	} else {
		summary, _, _ := strings.Cut(msg.Output, "\n")
		a.status.Succeeded(summary)
	}
	a.refresh()
}

// refresh re-renders the transcript and scrolls to the newest entry.
func (a *App) refresh() {
	if len(a.entries) == 0 {
		a.history.SetContent(a.styles.Muted.Render(
			`Commands: add "words" #tag | done <id> | search <term> #<tag>`,
		))
		return
	}

	var sb strings.Builder
	for i, e := range a.entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(a.styles.Prompt.Render("> "))
		sb.WriteString(a.styles.Command.Render(e.line))
		sb.WriteByte('\n')
		if e.err != nil {
			sb.WriteString(a.styles.Error.Render("Error: " + e.err.Error()))
			continue
		}
		sb.WriteString(a.renderOutput(e.output))
	}
	a.history.SetContent(sb.String())
	a.history.GotoBottom()
}

// renderOutput styles a response, highlighting the search count line.
func (a *App) renderOutput(output string) string {
	lines := strings.Split(output, "\n")
	for i, l := range lines {
		if i == 0 && strings.HasSuffix(l, " item(s) found") {
			lines[i] = a.styles.Count.Render(l)
			continue
		}
		lines[i] = a.styles.Response.Render(l)
	}
	return strings.Join(lines, "\n")
}

// describeSettings summarises the active settings for the header.
func (a *App) describeSettings() string {
	if a.ports.Settings == nil {
		return ""
	}
	s, err := a.ports.Settings.Get()
	if err != nil {
		logger.Warn("Could not load settings for the TUI header: %v", err)
		return ""
	}
	return fmt.Sprintf("%s index · %s store", s.Index.Strategy, s.Store.Backend)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	header := a.styles.Title.Render("swamp")
	if a.subtitle != "" {
		header += a.styles.Muted.Render("  " + a.subtitle)
	}

	parts := []string{header, a.history.View(), a.input.View()}
	if a.help.ShowAll {
		parts = append(parts, a.styles.Help.Render(a.help.View(a.keymap)))
	}
	parts = append(parts, a.status.View())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.layout()
}

// layout sizes the components for the current dimensions.
func (a *App) layout() {
	a.input.SetWidth(a.width)
	a.status.SetWidth(a.width)
	a.help.Width = a.width
	a.history.Width = a.width

	rows := a.height - chromeHeight
	if a.help.ShowAll {
		rows -= len(a.keymap.FullHelp()[0]) + 1
	}
	if rows < 1 {
		rows = 1
	}
	a.history.Height = rows
	a.history.GotoBottom()
}

// Busy reports whether a command is in flight.
func (a *App) Busy() bool {
	return a.busy
}

// Transcript returns the submitted lines, oldest first.
func (a *App) Transcript() []string {
	out := make([]string, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.line
	}
	return out
}

// Status returns the status bar.
func (a *App) Status() *status.Bar {
	return a.status
}

// Input returns the command input.
func (a *App) Input() *input.CommandInput {
	return a.input
}

// Ready reports whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}
