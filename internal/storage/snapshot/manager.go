// Package snapshot manages autosave snapshot files for Texter.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/texterhq/texter-go/internal/core/domain"
)

// Naming convention for snapshot pairs.
const (
	DefaultPrefix = "texter_autosave_"
	fileExtension = ".txt"
	metaExtension = ".meta.json"
)

// Meta is the metadata sidecar written next to each snapshot file.
//
// FilePath is a pointer so an unsaved document serializes as JSON
// null, matching what recovery expects to read back.
type Meta struct {
	FilePath  *string `json:"file_path"`
	Timestamp float64 `json:"timestamp"`
	Title     string  `json:"title"`
	Encoding  string  `json:"encoding,omitempty"`
}

// FallbackMeta is what a candidate gets when its sidecar is missing
// or unparsable. The candidate still recovers; it just loses its
// title and save path.
func FallbackMeta() Meta {
	return Meta{Title: domain.RecoveredFallbackTitle, Encoding: domain.DefaultEncoding}
}

// Path returns the save path carried in the metadata, or "" when the
// document had never been saved.
func (m Meta) Path() string {
	if m.FilePath == nil {
		return ""
	}
	return *m.FilePath
}

// Config configures the snapshot manager.
type Config struct {
	// Dir is the snapshot directory. Required.
	Dir string

	// Prefix is the snapshot filename prefix.
	Prefix string
}

// DefaultConfig returns a snapshot configuration rooted in the
// system temporary directory, where orphans survive a crash but not
// a machine cleanup.
func DefaultConfig() Config {
	return Config{
		Dir:    os.TempDir(),
		Prefix: DefaultPrefix,
	}
}

// Manager owns the snapshot directory.
type Manager struct {
	cfg Config
}

// NewManager creates a snapshot manager and ensures the directory exists.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("snapshot: dir is required")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
		return nil, fmt.Errorf("snapshot: create dir: %w", err)
	}
	return &Manager{cfg: cfg}, nil
}

// Dir returns the snapshot directory.
func (m *Manager) Dir() string {
	return m.cfg.Dir
}

// SnapshotPath returns the snapshot file path for an autosave ID.
func (m *Manager) SnapshotPath(autosaveID string) string {
	return filepath.Join(m.cfg.Dir, m.cfg.Prefix+autosaveID+fileExtension)
}

// MetaPath returns the metadata sidecar path for a snapshot file.
func MetaPath(snapshotPath string) string {
	return snapshotPath + metaExtension
}

// AutosaveIDFromPath derives the autosave ID embedded in a snapshot
// filename. Returns false if the name does not match the convention.
func (m *Manager) AutosaveIDFromPath(path string) (string, bool) {
	name := filepath.Base(path)
	if !strings.HasPrefix(name, m.cfg.Prefix) || !strings.HasSuffix(name, fileExtension) {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(name, m.cfg.Prefix), fileExtension)
	if !domain.IsValidAutosaveID(id) {
		return "", false
	}
	return id, true
}

// WritePair persists one document's snapshot slot: buffer text first,
// then the metadata sidecar. Both writes are temp-then-rename so a
// kill mid-cycle leaves either the previous pair or the new one,
// never a torn file.
func (m *Manager) WritePair(doc *domain.Document, now time.Time) error {
	if doc.AutosaveID == "" {
		return domain.ErrMissingArgument.WithDetails("autosave_id is required")
	}
	if !domain.IsValidAutosaveID(doc.AutosaveID) {
		return domain.ErrInvalidArgument.WithDetails("autosave_id is not filename-safe")
	}

	snapPath := m.SnapshotPath(doc.AutosaveID)
	if err := writeAtomic(snapPath, []byte(doc.Content)); err != nil {
		return domain.ErrSnapshotWriteFailed.WithDetails(snapPath).WithCause(err)
	}

	meta := Meta{
		Timestamp: float64(now.UnixMilli()) / 1000.0,
		Title:     doc.Title,
		Encoding:  doc.Encoding,
	}
	if doc.FilePath != "" {
		p := doc.FilePath
		meta.FilePath = &p
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return domain.ErrSnapshotWriteFailed.WithDetails(snapPath).WithCause(err)
	}
	if err := writeAtomic(MetaPath(snapPath), data); err != nil {
		return domain.ErrSnapshotWriteFailed.WithDetails(MetaPath(snapPath)).WithCause(err)
	}
	return nil
}

// ListCandidates lists snapshot files in the directory matching the
// naming convention, sorted by name for stable ordering. Metadata
// sidecars are not candidates themselves.
func (m *Manager) ListCandidates() ([]string, error) {
	entries, err := os.ReadDir(m.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, domain.ErrStorage.WithDetails(m.cfg.Dir).WithCause(err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := m.AutosaveIDFromPath(e.Name()); !ok {
			continue
		}
		paths = append(paths, filepath.Join(m.cfg.Dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadMeta reads the metadata sidecar for a snapshot file. A missing
// or unparsable sidecar yields the fallback metadata and ok=false;
// the candidate is still recoverable.
func (m *Manager) LoadMeta(snapshotPath string) (Meta, bool) {
	data, err := os.ReadFile(MetaPath(snapshotPath))
	if err != nil {
		return FallbackMeta(), false
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return FallbackMeta(), false
	}
	if meta.Title == "" {
		meta.Title = domain.RecoveredFallbackTitle
	}
	if meta.Encoding == "" {
		meta.Encoding = domain.DefaultEncoding
	}
	return meta, true
}

// ReadContent returns the snapshot file's buffer text.
func (m *Manager) ReadContent(snapshotPath string) (string, error) {
	data, err := os.ReadFile(snapshotPath)
	if err != nil {
		return "", domain.ErrSnapshotReadFailed.WithDetails(snapshotPath).WithCause(err)
	}
	return string(data), nil
}

// RemovePair deletes a document's snapshot slot. Absence is a no-op;
// a failed removal is harmless, the leftover is an orphan the next
// startup scan will find.
func (m *Manager) RemovePair(autosaveID string) error {
	if autosaveID == "" {
		return nil
	}
	return m.RemovePairByPath(m.SnapshotPath(autosaveID))
}

// RemovePairByPath deletes the snapshot file and its sidecar given
// the snapshot path, used by recovery cleanup.
func (m *Manager) RemovePairByPath(snapshotPath string) error {
	var firstErr error
	for _, p := range []string{snapshotPath, MetaPath(snapshotPath)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("snapshot: remove %s: %w", p, err)
			}
		}
	}
	return firstErr
}

// writeAtomic writes data to a temp file in the same directory and
// renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
