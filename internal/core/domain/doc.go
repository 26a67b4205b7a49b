// Package domain defines the core types of the cascade-delete coordinator.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DeletedEntity: The snapshot of a just-deleted primary record
//   - CleanupAction: One planned cleanup step (tagged variant)
//   - CleanupPlan: Actions plus the dependent records they resolved to
//   - CleanupOutcome: Per-step results of one invocation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
