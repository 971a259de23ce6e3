package lineproto

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/swamp/internal/logger"
)

// defaultPollInterval re-reads the file in case a write event was missed.
const defaultPollInterval = time.Second

// Follower runs the lines of a file and then keeps running lines appended
// to it, like tail -f.
type Follower struct {
	runner       *Runner
	path         string
	pollInterval time.Duration
}

// NewFollower creates a follower feeding path into runner.
func NewFollower(runner *Runner, path string) *Follower {
	return &Follower{
		runner:       runner,
		path:         path,
		pollInterval: defaultPollInterval,
	}
}

// SetPollInterval changes how often the file is re-read without an event.
func (f *Follower) SetPollInterval(d time.Duration) {
	if d > 0 {
		f.pollInterval = d
	}
}

// Follow processes the file until ctx is cancelled or the file is removed.
// Cancellation is not an error.
func (f *Follower) Follow(ctx context.Context) error {
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.path, err)
	}
	defer file.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch before the first read so no append is lost in between.
	if err := watcher.Add(f.path); err != nil {
		return fmt.Errorf("watching %s: %w", f.path, err)
	}

	t := &tail{reader: bufio.NewReader(file)}
	if err := t.drain(ctx, f.runner); err != nil {
		return err
	}
	logger.Debug("Following %s", f.path)

	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.flush(ctx, f.runner)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// An unlink of a file we hold open only shows up as Chmod.
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) || f.gone() {
				t.flush(ctx, f.runner)
				return fmt.Errorf("%s was removed or renamed", f.path)
			}
			if event.Has(fsnotify.Write) {
				if err := t.drain(ctx, f.runner); err != nil {
					return err
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", f.path, err)

		case <-ticker.C:
			if err := t.drain(ctx, f.runner); err != nil {
				return err
			}
			if f.gone() {
				t.flush(ctx, f.runner)
				return fmt.Errorf("%s was removed or renamed", f.path)
			}
		}
	}
}

// gone reports whether the path no longer exists.
func (f *Follower) gone() bool {
	_, err := os.Stat(f.path)
	return errors.Is(err, os.ErrNotExist)
}

// tail reads complete lines, holding back a trailing partial line until
// its newline arrives.
type tail struct {
	reader  *bufio.Reader
	partial strings.Builder
}

func (t *tail) drain(ctx context.Context, r *Runner) error {
	for {
		chunk, err := t.reader.ReadString('\n')
		t.partial.WriteString(chunk)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		line := strings.TrimSuffix(t.partial.String(), "\n")
		t.partial.Reset()
		r.Line(ctx, line)
	}
}

// flush runs a pending partial line.
func (t *tail) flush(ctx context.Context, r *Runner) {
	if t.partial.Len() == 0 {
		return
	}
	line := t.partial.String()
	t.partial.Reset()
	r.Line(ctx, line)
}
