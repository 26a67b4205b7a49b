// Package sqlite provides a SQLite-backed document store and object store
// for running the cascade coordinator without a cloud project.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Both stores share a single database connection:
//
//   - DocumentStore: documents keyed by full path, fields as JSON
//   - ObjectStore: binary objects keyed by bucket and path
//
// Collection-group queries match on the last collection segment of each
// document path and compare fields with json_extract.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.cascade/data/cascade.db
package sqlite
