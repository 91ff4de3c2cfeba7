package recovery

import (
	"github.com/texterhq/texter-go/internal/core/domain"
	"github.com/texterhq/texter-go/internal/storage/snapshot"
	"github.com/texterhq/texter-go/internal/telemetry/logger"
	"github.com/texterhq/texter-go/internal/telemetry/metric"
)

// Candidate is one orphan snapshot pair found by the startup scan.
type Candidate struct {
	// AutosaveID is derived from the snapshot filename.
	AutosaveID string

	// SnapshotPath is the absolute path of the snapshot file.
	SnapshotPath string

	// Meta is the sidecar content, or fallback metadata when the
	// sidecar was missing or unparsable.
	Meta snapshot.Meta

	// MetaOK reports whether Meta came from a readable sidecar.
	MetaOK bool
}

// Manager runs the startup recovery scan and the batch recover step.
type Manager struct {
	snaps   *snapshot.Manager
	log     logger.Logger
	metrics *metric.Registry
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(l logger.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// WithMetrics sets the metrics registry the manager reports to.
func WithMetrics(reg *metric.Registry) Option {
	return func(m *Manager) {
		m.metrics = reg
	}
}

// New creates a recovery manager over the given snapshot store.
func New(snaps *snapshot.Manager, opts ...Option) *Manager {
	m := &Manager{
		snaps:   snaps,
		log:     logger.Default(),
		metrics: metric.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Scan lists orphan snapshot pairs in the snapshot directory. Files
// that do not match the snapshot naming convention are ignored, as are
// metadata sidecars themselves. A missing or corrupt sidecar demotes
// the candidate to fallback metadata but never drops it.
func (m *Manager) Scan() ([]Candidate, error) {
	paths, err := m.snaps.ListCandidates()
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(paths))
	for _, path := range paths {
		aid, ok := m.snaps.AutosaveIDFromPath(path)
		if !ok {
			continue
		}

		meta, metaOK := m.snaps.LoadMeta(path)
		if !metaOK {
			m.log.Warn("snapshot sidecar unreadable, using fallback metadata",
				"snapshot", path)
		}

		candidates = append(candidates, Candidate{
			AutosaveID:   aid,
			SnapshotPath: path,
			Meta:         meta,
			MetaOK:       metaOK,
		})
	}

	m.metrics.RecoveryCandidates.Set(float64(len(candidates)))

	if len(candidates) > 0 {
		m.log.Info("orphan snapshots found", "count", len(candidates))
	}

	return candidates, nil
}

// Recover rebuilds one Document per candidate. An unreadable snapshot
// file recovers as an empty document. The returned documents are not
// yet registered anywhere, and the pairs stay on disk: until a
// document is registered the pair is the only copy of its content, so
// retiring it is the caller's move after registration succeeds.
func (m *Manager) Recover(candidates []Candidate) []*domain.Document {
	docs := make([]*domain.Document, 0, len(candidates))

	for _, cand := range candidates {
		content, err := m.snaps.ReadContent(cand.SnapshotPath)
		if err != nil {
			m.log.Warn("snapshot content unreadable, recovering empty",
				"snapshot", cand.SnapshotPath,
				"error", err)
			content = ""
		}

		doc, err := domain.NewRecoveredDocument(
			cand.AutosaveID,
			content,
			cand.Meta.Path(),
			cand.Meta.Title,
			cand.Meta.Encoding,
		)
		if err != nil {
			m.log.Error("recovered document rejected",
				"autosave_id", cand.AutosaveID,
				"error", err)
			continue
		}

		m.metrics.DocumentsRecovered.Inc()
		m.log.Info("document recovered",
			"document_id", doc.ID,
			"autosave_id", doc.AutosaveID,
			"path", doc.FilePath,
			"content", doc.Content)

		docs = append(docs, doc)
	}

	return docs
}
