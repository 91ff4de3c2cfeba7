// Package service provides the editor's application services.
//
// Editor is the single service the UI talks to. It owns the open
// document registry, the user-file and snapshot gateways, the autosave
// scheduler, and the startup recovery flow, and it enforces the rules
// the storage layers do not:
//
//   - a successful save retires the document's snapshot pair
//   - a failed save leaves the document untouched
//   - a confirmed close retires the pair before removing the document
//   - an accepted recovery retires a pair only after its document is
//     registered; until then the pair is the only copy
//   - confirmed exit stops autosave and cleans up pairs for documents
//     that are safely on disk
//
// Autosave failures never pass through this package to the UI; they
// are logged and counted at the scheduler.
package service
