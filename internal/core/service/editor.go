package service

import (
	"context"
	"sync"

	"github.com/texterhq/texter-go/internal/core/domain"
	"github.com/texterhq/texter-go/internal/recovery"
	"github.com/texterhq/texter-go/internal/telemetry/logger"
	"github.com/texterhq/texter-go/internal/telemetry/metric"
)

// DocumentRepository is the open-document registry.
type DocumentRepository interface {
	// Create registers a new document.
	Create(doc *domain.Document) error

	// Get retrieves a document by ID.
	Get(id string) (*domain.Document, error)

	// List returns all open documents in creation order.
	List() []*domain.Document

	// Count returns the number of open documents.
	Count() int

	// MarkEdited replaces the buffer and marks the document dirty.
	MarkEdited(id, content string) error

	// SetSaved binds the document to a path and clears the dirty flag.
	SetSaved(id, path string) error

	// Remove drops the document from the registry.
	Remove(id string) error
}

// FileGateway reads and writes user document files.
type FileGateway interface {
	Read(path string) (string, error)
	Write(path, text string) error
}

// SnapshotStore retires snapshot pairs.
type SnapshotStore interface {
	RemovePair(autosaveID string) error
}

// Recoverer runs the startup scan and the batch recover step.
type Recoverer interface {
	Scan() ([]recovery.Candidate, error)
	Recover(candidates []recovery.Candidate) []*domain.Document
}

// SchedulerControl is the slice of the autosave scheduler the editor
// needs at shutdown.
type SchedulerControl interface {
	Stop()
}

// Editor handles all collaborator-facing document operations.
type Editor struct {
	repo    DocumentRepository
	files   FileGateway
	snaps   SnapshotStore
	rec     Recoverer
	sched   SchedulerControl
	log     logger.Logger
	metrics *metric.Registry

	// mu guards the run-once recovery state.
	mu      sync.Mutex
	pending []recovery.Candidate
	scanned bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the editor's logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Editor) {
		e.log = l
	}
}

// WithMetrics sets the metrics registry the editor reports to.
func WithMetrics(reg *metric.Registry) Option {
	return func(e *Editor) {
		e.metrics = reg
	}
}

// NewEditor creates the editor service.
func NewEditor(repo DocumentRepository, files FileGateway, snaps SnapshotStore, rec Recoverer, sched SchedulerControl, opts ...Option) *Editor {
	e := &Editor{
		repo:    repo,
		files:   files,
		snaps:   snaps,
		rec:     rec,
		sched:   sched,
		log:     logger.Default(),
		metrics: metric.NewRegistry(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// NewDocument creates an empty untitled document and registers it.
func (e *Editor) NewDocument(ctx context.Context) (*domain.Document, error) {
	doc, err := domain.NewDocument()
	if err != nil {
		return nil, err
	}

	if err := e.repo.Create(doc); err != nil {
		return nil, err
	}

	e.metrics.DocumentsOpen.Set(float64(e.repo.Count()))
	logger.L(ctx).Info("document created", "document_id", doc.ID)

	return doc, nil
}

// OpenDocumentRequest contains parameters for opening a file.
type OpenDocumentRequest struct {
	Path string
}

// OpenDocument reads a file and registers it as a clean document
// bound to its path.
func (e *Editor) OpenDocument(ctx context.Context, req *OpenDocumentRequest) (*domain.Document, error) {
	// 1. Validate input
	if req.Path == "" {
		return nil, domain.ErrMissingArgument.WithDetails("path is required")
	}

	// 2. Read the file; read failures are user-visible
	content, err := e.files.Read(req.Path)
	if err != nil {
		return nil, err
	}

	// 3. Build a clean document bound to the path
	doc, err := domain.NewDocument()
	if err != nil {
		return nil, err
	}
	doc.Content = content
	doc.BindPath(req.Path)

	// 4. Register
	if err := e.repo.Create(doc); err != nil {
		return nil, err
	}

	e.metrics.DocumentsOpen.Set(float64(e.repo.Count()))
	logger.L(ctx).Info("document opened",
		"document_id", doc.ID,
		"path", req.Path,
		"content", doc.Content)

	return doc, nil
}

// EditRequest contains parameters for a buffer edit.
type EditRequest struct {
	ID      string
	Content string
}

// Edit replaces the document buffer and marks it dirty. Memory only;
// persistence is autosave's and Save's job.
func (e *Editor) Edit(ctx context.Context, req *EditRequest) error {
	if req.ID == "" {
		return domain.ErrMissingArgument.WithDetails("id is required")
	}
	return e.repo.MarkEdited(req.ID, req.Content)
}

// Get retrieves an open document by ID.
func (e *Editor) Get(ctx context.Context, id string) (*domain.Document, error) {
	return e.repo.Get(id)
}

// List returns all open documents in creation order.
func (e *Editor) List(ctx context.Context) []*domain.Document {
	return e.repo.List()
}

// SaveAsRequest contains parameters for an explicit save.
type SaveAsRequest struct {
	ID   string
	Path string
}

// SaveAs writes the document buffer to a path. On success the document
// is bound to the path, marked clean, and its snapshot pair is retired:
// the user file now supersedes the autosave. On failure the document
// and its snapshot are left exactly as they were.
func (e *Editor) SaveAs(ctx context.Context, req *SaveAsRequest) (*domain.Document, error) {
	// 1. Validate input
	if req.ID == "" {
		return nil, domain.ErrMissingArgument.WithDetails("id is required")
	}
	if req.Path == "" {
		return nil, domain.ErrMissingArgument.WithDetails("path is required")
	}

	// 2. Get the live buffer
	doc, err := e.repo.Get(req.ID)
	if err != nil {
		return nil, err
	}

	// 3. Write the user file first; nothing changes if this fails
	if err := e.files.Write(req.Path, doc.Content); err != nil {
		return nil, err
	}

	// 4. Bind path + clear dirty
	if err := e.repo.SetSaved(req.ID, req.Path); err != nil {
		return nil, err
	}

	// 5. Retire the snapshot pair, best effort
	if err := e.snaps.RemovePair(doc.AutosaveID); err != nil {
		logger.L(ctx).Warn("snapshot cleanup after save failed",
			"document_id", doc.ID,
			"autosave_id", doc.AutosaveID,
			"error", err)
	}

	logger.L(ctx).Info("document saved",
		"document_id", doc.ID,
		"path", req.Path)

	return e.repo.Get(req.ID)
}

// Save writes the document to its bound path. A document that was
// never saved has no path; the UI catches NoSavePath and asks for one.
func (e *Editor) Save(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := e.repo.Get(id)
	if err != nil {
		return nil, err
	}

	if doc.FilePath == "" {
		return nil, domain.ErrNoSavePath
	}

	return e.SaveAs(ctx, &SaveAsRequest{ID: id, Path: doc.FilePath})
}

// CloseConfirmed closes a document after the UI has handled any
// unsaved-changes confirmation. The snapshot pair is retired best
// effort: the user chose to discard, so the autosave must not
// resurrect the buffer on next start.
func (e *Editor) CloseConfirmed(ctx context.Context, id string) error {
	doc, err := e.repo.Get(id)
	if err != nil {
		return err
	}

	if err := e.snaps.RemovePair(doc.AutosaveID); err != nil {
		logger.L(ctx).Warn("snapshot cleanup on close failed",
			"document_id", doc.ID,
			"autosave_id", doc.AutosaveID,
			"error", err)
	}

	if err := e.repo.Remove(id); err != nil {
		return err
	}

	e.metrics.DocumentsOpen.Set(float64(e.repo.Count()))
	logger.L(ctx).Info("document closed", "document_id", id)

	return nil
}

// ExitConfirmed shuts the session down after the UI has confirmed any
// unsaved changes: stop autosave, then retire pairs for documents that
// are bound to a file. Untitled documents keep their pairs; the next
// start offers them for recovery.
func (e *Editor) ExitConfirmed(ctx context.Context) {
	e.sched.Stop()

	for _, doc := range e.repo.List() {
		if doc.FilePath == "" {
			continue
		}
		if err := e.snaps.RemovePair(doc.AutosaveID); err != nil {
			logger.L(ctx).Warn("snapshot cleanup on exit failed",
				"document_id", doc.ID,
				"autosave_id", doc.AutosaveID,
				"error", err)
		}
	}

	logger.L(ctx).Info("editor session closed", "documents", e.repo.Count())
}
