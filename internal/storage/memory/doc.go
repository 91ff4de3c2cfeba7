// Package memory provides the in-memory store of open documents.
//
// The store owns the set of open Document entities, keyed by their
// stable ID. The UI layer holds only IDs and never owns editor
// state.
//
// Features:
//
//   - Sharded primary index for concurrent access from the UI event
//     loop and the autosave goroutine
//   - Secondary index by autosave ID, so a snapshot slot maps back to
//     its live document
//   - Creation-order listing, stable for iteration and status display
//   - Configurable open-document quota
//
// Thread Safety:
//
// All operations are thread-safe. Reads return clones; the buffer a
// caller receives is never mutated behind its back.
package memory
