// Package recovery reconstitutes documents from orphan snapshots.
//
// An orphan snapshot pair in the snapshot directory means a previous
// run ended without the confirmed-exit cleanup: the content on disk is
// work the user never saved. The manager runs once at startup, before
// the UI becomes interactive:
//
//   - Scan lists candidate pairs, pairing each snapshot with its
//     metadata sidecar (fallback metadata when the sidecar is missing
//     or corrupt).
//   - The caller shows one aggregated prompt for the whole batch.
//   - Recover rebuilds a Document per candidate; the pair stays on
//     disk until the caller has registered the document.
//
// Recovery is deliberately lossy-tolerant: an unreadable snapshot
// recovers as an empty document, a broken sidecar costs only title and
// path, and cleanup failures are ignored. Losing metadata must never
// lose content.
package recovery
