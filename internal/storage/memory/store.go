// Package memory provides the in-memory store of open documents.
package memory

import (
	"sync"

	"github.com/texterhq/texter-go/internal/core/domain"
	"github.com/texterhq/texter-go/pkg/cmap"
)

// DefaultMaxOpenDocuments is the default quota of open documents.
const DefaultMaxOpenDocuments = 64

// Store provides in-memory document storage with secondary indexes.
type Store struct {
	// Primary index: DocumentID -> Document
	documents *cmap.Map[string, *domain.Document]

	// Secondary index: AutosaveID -> DocumentID
	autosaveIndex *cmap.Map[string, string]

	// Creation order of document IDs
	order *OrderIndex

	// Configuration
	maxOpenDocuments int

	// Global lock for operations requiring atomicity across indexes
	mu sync.RWMutex
}

// Option configures the Store.
type Option func(*Store)

// WithMaxOpenDocuments sets the open-document quota.
func WithMaxOpenDocuments(max int) Option {
	return func(s *Store) {
		s.maxOpenDocuments = max
	}
}

// New creates a new in-memory document store.
func New(opts ...Option) *Store {
	s := &Store{
		documents:        cmap.New[string, *domain.Document](),
		autosaveIndex:    cmap.New[string, string](),
		order:            NewOrderIndex(),
		maxOpenDocuments: DefaultMaxOpenDocuments,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create registers a new document.
func (s *Store) Create(doc *domain.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.order.Len() >= s.maxOpenDocuments {
		return domain.ErrTooManyDocuments
	}
	if s.documents.Has(doc.ID) {
		return domain.ErrDocumentConflict.WithDetails(doc.ID)
	}
	if s.autosaveIndex.Has(doc.AutosaveID) {
		return domain.ErrDocumentConflict.WithDetails("autosave_id " + doc.AutosaveID)
	}

	s.documents.Set(doc.ID, doc.Clone())
	s.autosaveIndex.Set(doc.AutosaveID, doc.ID)
	s.order.Append(doc.ID)
	return nil
}

// Get retrieves a document by ID. Returns a clone.
func (s *Store) Get(id string) (*domain.Document, error) {
	doc, ok := s.documents.Get(id)
	if !ok {
		return nil, domain.ErrDocumentNotFound.WithDetails(id)
	}
	return doc.Clone(), nil
}

// GetByAutosaveID retrieves a document by its snapshot slot key.
func (s *Store) GetByAutosaveID(autosaveID string) (*domain.Document, error) {
	id, ok := s.autosaveIndex.Get(autosaveID)
	if !ok {
		return nil, domain.ErrDocumentNotFound.WithDetails("autosave_id " + autosaveID)
	}
	doc, ok := s.documents.Get(id)
	if !ok {
		// Index inconsistency - clean up the orphaned entry.
		s.autosaveIndex.Delete(autosaveID)
		return nil, domain.ErrDocumentNotFound.WithDetails(id)
	}
	return doc.Clone(), nil
}

// List returns clones of all open documents in creation order.
func (s *Store) List() []*domain.Document {
	ids := s.order.IDs()
	out := make([]*domain.Document, 0, len(ids))
	for _, id := range ids {
		if doc, ok := s.documents.Get(id); ok {
			out = append(out, doc.Clone())
		}
	}
	return out
}

// Count returns the number of open documents.
func (s *Store) Count() int {
	return s.order.Len()
}

// MarkEdited replaces the document's buffer and sets the dirty flag.
// Memory only; disk is never touched here.
//
// The stored document is never mutated in place: readers clone it
// without holding s.mu, so a write replaces the stored value with an
// updated clone instead.
func (s *Store) MarkEdited(id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents.Get(id)
	if !ok {
		return domain.ErrDocumentNotFound.WithDetails(id)
	}

	updated := doc.Clone()
	updated.SetContent(content)
	s.documents.Set(id, updated)
	return nil
}

// SetSaved records a successful explicit save: the document binds to
// path, the title is re-derived, and the dirty flag clears.
func (s *Store) SetSaved(id, path string) error {
	if path == "" {
		return domain.ErrMissingArgument.WithDetails("path is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents.Get(id)
	if !ok {
		return domain.ErrDocumentNotFound.WithDetails(id)
	}

	updated := doc.Clone()
	updated.BindPath(path)
	s.documents.Set(id, updated)
	return nil
}

// Remove deletes a document from the store and its indexes.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents.Get(id)
	if !ok {
		return domain.ErrDocumentNotFound.WithDetails(id)
	}

	s.documents.Delete(id)
	s.autosaveIndex.Delete(doc.AutosaveID)
	s.order.Remove(id)
	return nil
}
