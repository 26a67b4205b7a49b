// Package driving defines the interfaces that drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Trigger adapters (the CLI, the webhook server and the MCP server) call
// these interfaces, and core services implement them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving
