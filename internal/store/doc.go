// Package store holds the ordered collection of traffic signals and keeps
// its backing storage in sync.
//
// A Store owns the in-memory records. Every mutation rewrites the full
// collection through a Backend before it becomes visible:
//   - FileBackend: a flat file in one of the codec formats
//   - SQLiteBackend: a single table ordered by insertion sequence
//
// # Ordering
//
// Records keep insertion order: load order first, then registration order.
// Deleting a record preserves the relative order of the rest.
//
// # Failure Semantics
//
// A mutation is staged on a copy of the collection and committed to memory
// only after Backend.Save succeeds. A failed save leaves the Store unchanged.
//
// There is no locking against other processes writing the same file or
// database; the last writer wins.
package store
