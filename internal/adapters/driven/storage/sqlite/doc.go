// Package sqlite provides a SQLite-backed implementation of driven.RecordStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Words and tags are stored as JSON arrays.
//
// # Data Location
//
// Every Store opens its own named in-memory database. Nothing is written to disk
// and the records are gone once the store is closed.
//
// # Thread Safety
//
// All operations are thread-safe. The store holds a single connection so the
// in-memory database lives exactly as long as the Store.
package sqlite
