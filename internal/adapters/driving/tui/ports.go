// Package tui provides an interactive terminal session for swamp.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/custodia-labs/swamp/internal/core/ports/driving"
)

// Executor runs a single protocol line and returns its rendered response.
// lineproto.Runner satisfies it.
type Executor interface {
	Execute(ctx context.Context, line string) (string, error)
}

// Ports aggregates what the TUI needs from the core.
type Ports struct {
	// Executor runs submitted commands.
	Executor Executor

	// Settings is optional. When set, the header shows the active settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate.
func NewPorts(executor Executor, settings driving.SettingsService) *Ports {
	return &Ports{
		Executor: executor,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Executor == nil {
		return ErrMissingExecutor
	}
	return nil
}
