package recovery

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/texterhq/texter-go/internal/core/domain"
	"github.com/texterhq/texter-go/internal/storage/snapshot"
)

func newTestSnaps(t *testing.T) *snapshot.Manager {
	t.Helper()

	snaps, err := snapshot.NewManager(snapshot.Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return snaps
}

func writeOrphan(t *testing.T, snaps *snapshot.Manager, content, path string) *domain.Document {
	t.Helper()

	doc, err := domain.NewDocument()
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}
	doc.SetContent(content)
	if path != "" {
		doc.BindPath(path)
	}
	if err := snaps.WritePair(doc, time.Now()); err != nil {
		t.Fatalf("WritePair() error = %v", err)
	}
	return doc
}

func TestScanAndRecover_RoundTrip(t *testing.T) {
	snaps := newTestSnaps(t)
	orphan := writeOrphan(t, snaps, "unsaved draft", "/home/alex/notes.txt")

	m := New(snaps)

	cands, err := m.Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("candidates = %d, want 1", len(cands))
	}
	if cands[0].AutosaveID != orphan.AutosaveID {
		t.Fatalf("AutosaveID = %q, want %q", cands[0].AutosaveID, orphan.AutosaveID)
	}
	if !cands[0].MetaOK {
		t.Fatal("sidecar was readable but MetaOK = false")
	}

	docs := m.Recover(cands)
	if len(docs) != 1 {
		t.Fatalf("recovered = %d, want 1", len(docs))
	}

	got := docs[0]
	if got.Content != "unsaved draft" {
		t.Fatalf("Content = %q, want the snapshot content", got.Content)
	}
	if got.FilePath != "/home/alex/notes.txt" {
		t.Fatalf("FilePath = %q", got.FilePath)
	}
	if got.Title != "notes.txt" {
		t.Fatalf("Title = %q, want notes.txt", got.Title)
	}
	if !got.Recovered || !got.Dirty {
		t.Fatalf("Recovered = %v, Dirty = %v, want both true", got.Recovered, got.Dirty)
	}
	if got.ID == orphan.ID {
		t.Fatal("recovered document reused the crashed run's document ID")
	}

	// The pair is still on disk: until the caller registers the
	// document it is the only copy, so Recover never deletes it.
	again, err := m.Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(again) != 1 {
		t.Fatalf("candidates after recover = %d, want 1 still on disk", len(again))
	}
}

func TestScan_BatchCount(t *testing.T) {
	snaps := newTestSnaps(t)
	writeOrphan(t, snaps, "one", "")
	writeOrphan(t, snaps, "two", "")
	writeOrphan(t, snaps, "three", "/tmp/c.txt")

	m := New(snaps)

	cands, err := m.Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(cands) != 3 {
		t.Fatalf("candidates = %d, want 3", len(cands))
	}

	docs := m.Recover(cands)
	if len(docs) != 3 {
		t.Fatalf("recovered = %d, want 3", len(docs))
	}
}

func TestScan_CorruptSidecarFallsBack(t *testing.T) {
	snaps := newTestSnaps(t)
	orphan := writeOrphan(t, snaps, "content survives", "/tmp/x.txt")

	metaPath := snapshot.MetaPath(snaps.SnapshotPath(orphan.AutosaveID))
	if err := os.WriteFile(metaPath, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("corrupt sidecar: %v", err)
	}

	m := New(snaps)
	cands, err := m.Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("candidates = %d, want 1", len(cands))
	}
	if cands[0].MetaOK {
		t.Fatal("MetaOK = true for a corrupt sidecar")
	}

	docs := m.Recover(cands)
	if len(docs) != 1 {
		t.Fatalf("recovered = %d, want 1", len(docs))
	}
	if docs[0].Content != "content survives" {
		t.Fatalf("Content = %q, metadata loss must not lose content", docs[0].Content)
	}
	if docs[0].Title != "Recovered" {
		t.Fatalf("Title = %q, want fallback title", docs[0].Title)
	}
	if docs[0].FilePath != "" {
		t.Fatalf("FilePath = %q, want empty after sidecar loss", docs[0].FilePath)
	}
}

func TestRecover_UnreadableSnapshotRecoversEmpty(t *testing.T) {
	snaps := newTestSnaps(t)
	orphan := writeOrphan(t, snaps, "gone", "")

	m := New(snaps)
	cands, err := m.Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	// Content vanishes between scan and recover.
	if err := os.Remove(snaps.SnapshotPath(orphan.AutosaveID)); err != nil {
		t.Fatalf("remove snapshot: %v", err)
	}

	docs := m.Recover(cands)
	if len(docs) != 1 {
		t.Fatalf("recovered = %d, want 1", len(docs))
	}
	if docs[0].Content != "" {
		t.Fatalf("Content = %q, want empty", docs[0].Content)
	}
}

func TestScan_LeavesFilesUntouched(t *testing.T) {
	snaps := newTestSnaps(t)
	writeOrphan(t, snaps, "keep me", "")

	m := New(snaps)
	if _, err := m.Scan(); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if _, err := m.Scan(); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	entries, err := os.ReadDir(snaps.Dir())
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("files after scans = %d, want snapshot + sidecar", len(entries))
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Fatalf("temp residue left behind: %s", e.Name())
		}
	}
}
