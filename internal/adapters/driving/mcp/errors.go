// Package mcp provides an MCP (Model Context Protocol) server adapter for cascade.
// It lets AI assistants inspect and run cleanups for deleted content.
package mcp

import "errors"

// ErrMissingCleanupService is returned when the cleanup service is not provided.
var ErrMissingCleanupService = errors.New("mcp: cleanup service is required")
