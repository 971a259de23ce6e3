package lineproto

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/swamp/internal/core/ports/driving"
	"github.com/custodia-labs/swamp/internal/logger"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Stats counts processed lines.
type Stats struct {
	// Lines is the number of lines read, header included.
	Lines int

	// Commands is the number of commands that succeeded.
	Commands int

	// Errors is the number of lines reported on the error stream.
	Errors int
}

// Runner executes command lines against a TodoService.
type Runner struct {
	svc    driving.TodoService
	parser *Parser
	out    io.Writer
	errOut io.Writer

	header     bool
	headerSeen bool
	stats      Stats
}

// NewRunner creates a runner writing responses to out and errors to errOut.
func NewRunner(svc driving.TodoService, parser *Parser, out, errOut io.Writer) *Runner {
	return &Runner{
		svc:    svc,
		parser: parser,
		out:    out,
		errOut: errOut,
	}
}

// SetHeader makes the runner treat the first line as a command count.
func (r *Runner) SetHeader(header bool) {
	r.header = header
}

// Stats returns the counters so far.
func (r *Runner) Stats() Stats {
	return r.stats
}

// Run processes every line of in. It only fails when in cannot be read or
// ctx is cancelled; per-line failures are reported and skipped.
func (r *Runner) Run(ctx context.Context, in io.Reader) (Stats, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return r.stats, err
		}
		r.Line(ctx, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return r.stats, fmt.Errorf("reading input: %w", err)
	}
	return r.stats, nil
}

// Line processes one input line, writing its response or error.
func (r *Runner) Line(ctx context.Context, text string) {
	r.stats.Lines++

	if r.header && !r.headerSeen {
		r.headerSeen = true
		count := strings.TrimSpace(text)
		if _, err := strconv.Atoi(count); err != nil {
			logger.Warn("Header %q is not a command count, skipping it", count)
		} else {
			logger.Debug("Header announces %s command(s)", count)
		}
		return
	}

	if strings.TrimSpace(text) == "" {
		logger.Debug("Skipping blank line %d", r.stats.Lines)
		return
	}

	resp, err := r.Execute(ctx, text)
	if err != nil {
		r.stats.Errors++
		lineErr := &LineError{Line: r.stats.Lines, Input: text, Err: err}
		logger.Debug("Failed line %q: %v", text, err)
		fmt.Fprintf(r.errOut, "Error: %v\n", lineErr)
		return
	}
	r.stats.Commands++
	fmt.Fprintln(r.out, resp)
}

// Execute parses and runs a single command, returning its response.
func (r *Runner) Execute(ctx context.Context, text string) (string, error) {
	cmd, err := r.parser.Parse(text)
	if err != nil {
		return "", err
	}

	switch cmd.Op {
	case OpAdd:
		rec, err := r.svc.Add(ctx, cmd.Words, cmd.Tags)
		if err != nil {
			return "", err
		}
		return FormatAdded(rec), nil
	case OpDone:
		if err := r.svc.Done(ctx, cmd.ID); err != nil {
			return "", err
		}
		return FormatDone(), nil
	case OpSearch:
		records, err := r.svc.Search(ctx, cmd.Terms)
		if err != nil {
			return "", err
		}
		return FormatFound(records), nil
	default:
		return "", fmt.Errorf("unhandled command %s", cmd.Op)
	}
}
