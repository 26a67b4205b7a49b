package mcp

import (
	"github.com/custodia-labs/cascade/internal/core/ports/driven"
	"github.com/custodia-labs/cascade/internal/core/ports/driving"
)

// Ports aggregates all ports required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Cleanup plans and runs cleanups.
	Cleanup driving.CleanupService

	// Settings exposes the current configuration.
	Settings driving.SettingsService

	// Documents reads content documents for plan resources.
	Documents driven.DocumentReader
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Cleanup == nil {
		return ErrMissingCleanupService
	}
	// Settings and Documents are optional
	return nil
}
