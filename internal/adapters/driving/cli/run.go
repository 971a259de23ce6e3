package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/swamp/internal/adapters/driving/lineproto"
	"github.com/custodia-labs/swamp/internal/logger"
)

var (
	runHeader bool
	runFollow bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Process commands from a file or stdin",
	Long: `Process add, done and search commands, one per line.

Responses go to stdout. A malformed line or an unknown id is reported on
stderr as "Error: line N: ..." and processing continues with the next line.

The first line is a command count and is skipped. Input without one needs
--header=false, or input.header set to false.
With --follow the file is kept open and lines appended to it are processed
until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLines,
}

func init() {
	runCmd.Flags().BoolVar(&runHeader, "header", true, "skip a leading command-count line (overrides input.header)")
	runCmd.Flags().BoolVarP(&runFollow, "follow", "f", false, "keep processing lines appended to the file")
	rootCmd.AddCommand(runCmd)
}

func runLines(cmd *cobra.Command, args []string) error {
	if runFollow && len(args) == 0 {
		return errors.New("--follow requires a file")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("header") {
		settings.Input.Header = runHeader
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

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := sess.runner(cmd.OutOrStdout(), cmd.ErrOrStderr())
	defer logger.Timed("run")()

	if runFollow {
		err := lineproto.NewFollower(runner, args[0]).Follow(ctx)
		logStats(runner.Stats())
		return err
	}

	in, closeIn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeIn()

	stats, err := runner.Run(ctx, in)
	logStats(stats)
	if errors.Is(err, context.Canceled) {
		logger.Info("Interrupted")
		return nil
	}
	return err
}

// openInput returns the named file, or stdin when no file is given.
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("opening input: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}

	in := cmd.InOrStdin()
	if isTerminal(in) {
		cmd.PrintErrln("Reading commands from the terminal, one per line. Press Ctrl-D to finish.")
	}
	return in, func() {}, nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r any) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func logStats(s lineproto.Stats) {
	logger.Info("Processed %d line(s): %d command(s), %d error(s)", s.Lines, s.Commands, s.Errors)
}
