// Package domain defines the core domain models for Texter.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured
// error code.
type DomainError struct {
	Code    string // Error code (e.g., "TX-DOC-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Document Errors (DOC)
// ============================================================================

var (
	// ErrDocumentNotFound indicates the requested document is not open.
	ErrDocumentNotFound = NewDomainError("TX-DOC-4040", "document not found")

	// ErrDocumentConflict indicates the document ID is already registered.
	ErrDocumentConflict = NewDomainError("TX-DOC-4090", "document id conflict")

	// ErrDocumentValidation indicates document field validation failed.
	ErrDocumentValidation = NewDomainError("TX-DOC-4001", "document validation failed")

	// ErrNoSavePath indicates a save was requested for a document that
	// has never been bound to a path. The collaborator should ask the
	// user for one and retry with SaveAs.
	ErrNoSavePath = NewDomainError("TX-DOC-4002", "document has no save path")

	// ErrTooManyDocuments indicates the open-document quota was reached.
	ErrTooManyDocuments = NewDomainError("TX-DOC-4003", "too many open documents")
)

// ============================================================================
// File Errors (FILE)
//
// These are the only failures ever surfaced to the user: reads and
// writes of real user files. Snapshot-path failures stay internal.
// ============================================================================

var (
	// ErrReadFailed indicates a user file could not be read.
	ErrReadFailed = NewDomainError("TX-FILE-5001", "file read failed")

	// ErrWriteFailed indicates a user file could not be written.
	ErrWriteFailed = NewDomainError("TX-FILE-5002", "file write failed")
)

// ============================================================================
// Snapshot Errors (SNAP)
// ============================================================================

var (
	// ErrSnapshotWriteFailed indicates a snapshot pair could not be
	// persisted. Callers downgrade this to a log entry and a metric;
	// it must never interrupt editing.
	ErrSnapshotWriteFailed = NewDomainError("TX-SNAP-5001", "snapshot write failed")

	// ErrSnapshotReadFailed indicates a snapshot file could not be
	// read back during recovery.
	ErrSnapshotReadFailed = NewDomainError("TX-SNAP-5002", "snapshot read failed")
)

// ============================================================================
// Argument and System Errors
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("TX-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("TX-ARG-1002", "missing required argument")

	// ErrInternal indicates an internal error.
	ErrInternal = NewDomainError("TX-SYS-5000", "internal error")

	// ErrStorage indicates a storage layer error.
	ErrStorage = NewDomainError("TX-SYS-5001", "storage error")
)
