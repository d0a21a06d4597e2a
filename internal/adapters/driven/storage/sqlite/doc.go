// Package sqlite provides the SQLite-based implementation of the claim store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. A single database file
// holds the four tables the retrieval core reads and writes:
//
//   - pages: full claim pages with their metadata
//   - chunks: sentence-bounded spans of a page with their embeddings
//   - summaries: one generated summary per page with its embedding
//   - exchanges: the persisted question/answer log
//
// Embeddings are stored as little-endian float32 blobs alongside the text
// they encode; similarity search happens in the core, not in SQL.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.claimant/data/claim.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
