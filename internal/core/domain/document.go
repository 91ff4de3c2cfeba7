// Package domain defines the core domain models for Texter.
package domain

import (
	"crypto/rand"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
)

// Document constraints.
const (
	MaxTitleLength    = 255
	MaxFilePathLength = 4096
	MaxContentBytes   = 64 << 20 // 64MB per buffer

	// DocumentIDPrefix is the prefix for document IDs.
	DocumentIDPrefix = "txd-"

	// UntitledTitle is the placeholder title for documents that have
	// never been saved.
	UntitledTitle = "Untitled"

	// RecoveredTitlePrefix marks documents reconstituted from an
	// orphan snapshot.
	RecoveredTitlePrefix = "Recovered - "

	// RecoveredFallbackTitle stands in for documents recovered
	// without a readable metadata sidecar.
	RecoveredFallbackTitle = "Recovered"

	// DefaultEncoding is the declared text encoding for new documents.
	DefaultEncoding = "utf-8"
)

// Document represents one open, editable unit of text.
type Document struct {
	// ID is the unique identifier for the document.
	// Format: txd-{ulid_lowercase}, generated once and never reused.
	ID string `json:"id"`

	// Title is the display name, derived from the FilePath basename
	// or UntitledTitle while the document is unsaved.
	Title string `json:"title"`

	// Content is the current text buffer, owned exclusively by the
	// document. UTF-8.
	Content string `json:"content"`

	// FilePath is the user's real save target. Empty until the first
	// explicit save.
	FilePath string `json:"file_path"`

	// Dirty reports whether Content differs from the last write to
	// FilePath. Advisory only; autosave does not consult it.
	Dirty bool `json:"dirty"`

	// AutosaveID names the document's snapshot/metadata pair on disk.
	// Stable for the document's lifetime, independent of ID.
	AutosaveID string `json:"autosave_id"`

	// Recovered is set when the document was reconstituted from an
	// orphan snapshot at startup.
	Recovered bool `json:"recovered"`

	// Encoding is the declared text encoding, carried through the
	// snapshot metadata sidecar.
	Encoding string `json:"encoding"`

	// CreatedAt is the creation timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`
}

// Stats summarizes a document buffer for the status line.
type Stats struct {
	Words int
	Chars int
	Lines int
}

// NewDocument creates a new empty Document with generated identifiers.
func NewDocument() (*Document, error) {
	id, err := GenerateDocumentID()
	if err != nil {
		return nil, err
	}
	aid, err := GenerateAutosaveID()
	if err != nil {
		return nil, err
	}

	return &Document{
		ID:         id,
		Title:      UntitledTitle,
		AutosaveID: aid,
		Encoding:   DefaultEncoding,
		CreatedAt:  time.Now().UnixMilli(),
	}, nil
}

// NewRecoveredDocument reconstitutes a Document from an orphan snapshot.
// The document keeps the snapshot's autosave ID so the pair stays bound,
// gets a fresh document ID, and starts dirty: its content was never
// confirmed written to filePath.
func NewRecoveredDocument(autosaveID, content, filePath, title, encoding string) (*Document, error) {
	if !IsValidAutosaveID(autosaveID) {
		return nil, ErrInvalidArgument.WithDetails("autosave_id is not filename-safe")
	}

	id, err := GenerateDocumentID()
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = TitleForPath(filePath)
	}
	if encoding == "" {
		encoding = DefaultEncoding
	}

	return &Document{
		ID:         id,
		Title:      title,
		Content:    content,
		FilePath:   filePath,
		Dirty:      true,
		AutosaveID: autosaveID,
		Recovered:  true,
		Encoding:   encoding,
		CreatedAt:  time.Now().UnixMilli(),
	}, nil
}

// GenerateDocumentID generates a new document ID using ULID.
// Format: txd-{ulid_lowercase}.
func GenerateDocumentID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", ErrInternal.WithCause(err)
	}
	return DocumentIDPrefix + strings.ToLower(id.String()), nil
}

// GenerateAutosaveID generates a new autosave ID using ULID.
// The ID is lowercase and filename-safe; it becomes part of the
// snapshot filename.
func GenerateAutosaveID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", ErrInternal.WithCause(err)
	}
	return strings.ToLower(id.String()), nil
}

// TitleForPath derives a display title from a save path.
// Returns UntitledTitle for an empty path.
func TitleForPath(path string) string {
	if path == "" {
		return UntitledTitle
	}
	return filepath.Base(path)
}

// DisplayTitle returns the title as shown in the document list,
// with the recovered marker applied when relevant. The fallback title
// already says it all; prefixing it would render "Recovered - Recovered".
func (d *Document) DisplayTitle() string {
	if d.Recovered && d.Title != RecoveredFallbackTitle {
		return RecoveredTitlePrefix + d.Title
	}
	return d.Title
}

// SetContent replaces the buffer and marks the document dirty.
func (d *Document) SetContent(content string) {
	d.Content = content
	d.Dirty = true
}

// BindPath binds the document to a save path after a successful
// write: FilePath is set, the title is re-derived, and the dirty flag
// clears. A recovered document loses its recovered marker once the
// user has saved it somewhere real.
func (d *Document) BindPath(path string) {
	d.FilePath = path
	d.Title = TitleForPath(path)
	d.Dirty = false
	d.Recovered = false
}

// Untitled reports whether the document has never been bound to a
// save path.
func (d *Document) Untitled() bool {
	return d.FilePath == ""
}

// Stats computes word/char/line counts for the buffer.
func (d *Document) Stats() Stats {
	lines := 0
	if d.Content != "" {
		lines = strings.Count(d.Content, "\n") + 1
	}
	return Stats{
		Words: len(strings.Fields(d.Content)),
		Chars: utf8.RuneCountInString(d.Content),
		Lines: lines,
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := *d
	return &c
}

// Validate validates the document fields against constraints.
// Returns a DomainError with code TX-DOC-4001 if validation fails.
func (d *Document) Validate() error {
	var violations []string

	if d.ID == "" {
		violations = append(violations, "id is required")
	}
	if d.AutosaveID == "" {
		violations = append(violations, "autosave_id is required")
	}
	if !IsValidAutosaveID(d.AutosaveID) {
		violations = append(violations, "autosave_id is not filename-safe")
	}
	if len(d.Title) > MaxTitleLength {
		violations = append(violations, "title exceeds 255 characters")
	}
	if len(d.FilePath) > MaxFilePathLength {
		violations = append(violations, "file_path exceeds 4096 characters")
	}
	if len(d.Content) > MaxContentBytes {
		violations = append(violations, "content exceeds 64MB")
	}

	if len(violations) > 0 {
		return ErrDocumentValidation.WithDetails(strings.Join(violations, "; "))
	}

	return nil
}

// IsValidAutosaveID reports whether an autosave ID is safe to embed
// in a snapshot filename: non-empty, lowercase alphanumeric plus
// hyphen, no path separators.
func IsValidAutosaveID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
