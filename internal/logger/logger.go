// Package logger provides verbose logging for the swamp CLI.
// When verbose mode is enabled via the --verbose flag, messages are
// printed to stderr to show how each command line is parsed, indexed
// and searched.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	session string
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// NewSession starts a new logging session and returns its id.
// Every subsequent line carries the first eight characters of the id.
func NewSession() string {
	id := uuid.New().String()
	SetSession(id)
	return id
}

// SetSession sets the session id. An empty id disables the tag.
func SetSession(id string) {
	mu.Lock()
	defer mu.Unlock()
	session = id
}

// Session returns the current session id.
func Session() string {
	mu.RLock()
	defer mu.RUnlock()
	return session
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit("DEBUG", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit("INFO", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	emit("WARN", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Timed logs how long an operation took. Use as:
//
//	defer logger.Timed("search")()
func Timed(name string) func() {
	if !IsVerbose() {
		return func() {}
	}
	start := time.Now()
	return func() {
		Debug("%s took %s", name, time.Since(start))
	}
}

func emit(level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	prefix := "[" + level + "] "
	if session != "" {
		prefix += "[" + shortID(session) + "] "
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
