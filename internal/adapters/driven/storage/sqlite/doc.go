// Package sqlite provides the default persistent vector store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. A single database file
// holds the index metadata (embedding model and dimensions) and one row per
// chunk with its embedding stored as a little-endian float32 BLOB.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// The database is stored at <index_dir>/index.db. Removing that file (and
// its WAL companions) removes the index.
//
// # Search
//
// Queries are answered with an exact cosine scan over every stored vector.
// Results with equal scores keep insertion order.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
