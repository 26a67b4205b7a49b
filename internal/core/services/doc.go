// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The cascade coordinator is split three ways:
//
//   - PlanActions: pure rules turning a deleted entity into cleanup actions
//   - Planner: resolves record actions into dependent records (read-only)
//   - Executor: removes the object and commits the records in batches
//
// Services are pure Go with no CGO.
package services
