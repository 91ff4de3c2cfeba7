package service

import (
	"context"

	"github.com/texterhq/texter-go/internal/core/domain"
	"github.com/texterhq/texter-go/internal/telemetry/logger"
)

// Startup runs the orphan snapshot scan. It must run before the UI is
// interactive and before the first autosave cycle; a second call is a
// no-op returning zero. The returned count feeds the single aggregated
// recovery prompt.
func (e *Editor) Startup(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.scanned {
		return 0, nil
	}
	e.scanned = true

	candidates, err := e.rec.Scan()
	if err != nil {
		return 0, domain.ErrStorage.WithCause(err)
	}

	e.pending = candidates
	return len(candidates), nil
}

// RecoveryDecision resolves the aggregated recovery prompt.
//
// Accept recovers the whole batch: each candidate becomes an open
// document flagged Recovered, and its pair is retired from disk only
// once the document is registered. Until then the pair is the only
// copy of the content, so a registration failure (quota, conflict)
// leaves it on disk for the next run. Decline drops the batch without
// touching any file; the orphans stay eligible for a future run.
func (e *Editor) RecoveryDecision(ctx context.Context, accept bool) ([]*domain.Document, error) {
	e.mu.Lock()
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()

	if len(pending) == 0 {
		return nil, nil
	}

	if !accept {
		logger.L(ctx).Info("recovery declined, snapshots left on disk",
			"count", len(pending))
		return nil, nil
	}

	recovered := e.rec.Recover(pending)

	docs := make([]*domain.Document, 0, len(recovered))
	for _, doc := range recovered {
		if err := e.repo.Create(doc); err != nil {
			// The pair on disk is still the only copy; leave it
			// for the next startup scan.
			logger.L(ctx).Warn("recovered document not registered, snapshot kept",
				"document_id", doc.ID,
				"autosave_id", doc.AutosaveID,
				"error", err)
			continue
		}

		if err := e.snaps.RemovePair(doc.AutosaveID); err != nil {
			logger.L(ctx).Warn("snapshot cleanup after recovery failed",
				"document_id", doc.ID,
				"autosave_id", doc.AutosaveID,
				"error", err)
		}

		docs = append(docs, doc)
	}

	e.metrics.DocumentsOpen.Set(float64(e.repo.Count()))
	logger.L(ctx).Info("recovery complete",
		"offered", len(pending),
		"restored", len(docs))

	return docs, nil
}
