// Package webhook provides an HTTP adapter that receives document deletion
// events and runs the cascade cleanup for each one.
package webhook

import "errors"

// ErrMissingCleanupService is returned when the cleanup service is not provided.
var ErrMissingCleanupService = errors.New("webhook: cleanup service is required")
