package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/swamp/internal/adapters/driving/tui"
	"github.com/custodia-labs/swamp/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal session",
	Long: `Type commands and see their responses in a scrolling history.

The session starts with an empty store and ends when you quit.

Controls:
  Enter      - Run the command
  ↑/↓        - Recall previous commands
  PgUp/PgDn  - Scroll the history
  Ctrl+L     - Clear the history
  F1         - Toggle help
  Esc        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panicked: %v", r)
		}
	}()

	if !isTerminal(cmd.InOrStdin()) || !isTerminal(cmd.OutOrStdout()) {
		return errors.New("tui needs an interactive terminal; use 'swamp run' for piped input")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	sess, err := newSession(settings)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			logger.Warn("Closing record store: %v", cerr)
		}
	}()

	// Responses come back through Execute, so the runner's writers are unused.
	runner := sess.runner(nil, nil)

	app, err := tui.NewApp(tui.NewPorts(runner, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
