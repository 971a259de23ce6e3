package tui

import "errors"

// ErrMissingExecutor is returned when no command executor is provided.
var ErrMissingExecutor = errors.New("tui: command executor is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
