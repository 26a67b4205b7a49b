// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Point reads, scoped collection reads, collection-group
//     reference queries and atomic batch deletes (Firestore, SQLite, memory)
//   - ObjectStore: Object deletion (Cloud Storage, SQLite, memory)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - OutcomeRecorder: Receives invocation outcomes (Prometheus).
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
