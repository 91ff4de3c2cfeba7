// Package cmap provides a concurrent map for the document store.
//
// It implements a sharded concurrent map so that UI intents and the
// autosave goroutine can touch different documents without
// contending on one lock:
//
//   - Sharding: configurable power-of-two shard count
//   - Fine-grained Locking: per-shard RWMutex
//   - Iteration: Range walks shards under read locks
//
// Usage:
//
//	m := cmap.New[string, *Document]()
//	m.Set("txd-01...", doc)
//	val, ok := m.Get("txd-01...")
//
// All operations are safe for concurrent use. Read operations (Get,
// Has) take RLock, write operations (Set, Delete) take Lock.
package cmap
