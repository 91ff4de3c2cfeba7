// Package domain defines the core domain models for Texter.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - Document: One open, editable unit of text, identified
//     independently of any save path
//   - Errors: Domain-specific error definitions with structured codes
//
// A Document carries two identifiers: ID, the handle the rest of the
// system (including the UI) uses to address it, and AutosaveID, the
// stable key binding it to its snapshot/metadata file pair on disk.
// They are independent so that a document recovered from an orphan
// snapshot can adopt the AutosaveID embedded in the snapshot filename
// and re-bind to the same snapshot slot.
package domain
