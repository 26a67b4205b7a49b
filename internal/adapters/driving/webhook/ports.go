package webhook

import (
	"net/http"

	"github.com/custodia-labs/cascade/internal/core/ports/driving"
	"github.com/custodia-labs/cascade/internal/logger"
)

// Ports aggregates everything the webhook server depends on.
type Ports struct {
	// Cleanup runs the cascade for a deletion event.
	Cleanup driving.CleanupService

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// Log receives request logs. Defaults to a no-op logger.
	Log logger.Logger
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Cleanup == nil {
		return ErrMissingCleanupService
	}
	return nil
}
