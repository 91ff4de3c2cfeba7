package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/texterhq/texter-go/internal/core/domain"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func newTestDoc(t *testing.T, content string) *domain.Document {
	t.Helper()
	d, err := domain.NewDocument()
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	d.Content = content
	return d
}

func TestManager_WritePairRoundTrip(t *testing.T) {
	m := newTestManager(t)
	doc := newTestDoc(t, "hello")
	doc.FilePath = "/home/alex/notes.txt"
	doc.Title = "notes.txt"

	now := time.Now()
	if err := m.WritePair(doc, now); err != nil {
		t.Fatalf("WritePair: %v", err)
	}

	snapPath := m.SnapshotPath(doc.AutosaveID)
	content, err := m.ReadContent(snapPath)
	if err != nil {
		t.Fatalf("ReadContent: %v", err)
	}
	if content != "hello" {
		t.Fatalf("content = %q, want %q", content, "hello")
	}

	meta, ok := m.LoadMeta(snapPath)
	if !ok {
		t.Fatal("LoadMeta ok = false, want true")
	}
	if meta.Path() != "/home/alex/notes.txt" {
		t.Fatalf("meta path = %q", meta.Path())
	}
	if meta.Title != "notes.txt" {
		t.Fatalf("meta title = %q", meta.Title)
	}
	if meta.Timestamp <= 0 {
		t.Fatalf("meta timestamp = %v", meta.Timestamp)
	}
}

func TestManager_UnsavedDocumentWritesNullPath(t *testing.T) {
	m := newTestManager(t)
	doc := newTestDoc(t, "draft")

	if err := m.WritePair(doc, time.Now()); err != nil {
		t.Fatalf("WritePair: %v", err)
	}

	raw, err := os.ReadFile(MetaPath(m.SnapshotPath(doc.AutosaveID)))
	if err != nil {
		t.Fatalf("ReadFile meta: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v, present := decoded["file_path"]; !present || v != nil {
		t.Fatalf("file_path = %v, want explicit null", v)
	}
}

func TestManager_OverwriteNotAppend(t *testing.T) {
	m := newTestManager(t)
	doc := newTestDoc(t, "first")

	if err := m.WritePair(doc, time.Now()); err != nil {
		t.Fatalf("WritePair 1: %v", err)
	}
	doc.SetContent("second")
	if err := m.WritePair(doc, time.Now()); err != nil {
		t.Fatalf("WritePair 2: %v", err)
	}

	content, err := m.ReadContent(m.SnapshotPath(doc.AutosaveID))
	if err != nil {
		t.Fatalf("ReadContent: %v", err)
	}
	if content != "second" {
		t.Fatalf("content = %q, want %q", content, "second")
	}

	candidates, err := m.ListCandidates()
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
}

func TestManager_IdempotentRewrite(t *testing.T) {
	m := newTestManager(t)
	doc := newTestDoc(t, "stable content")

	if err := m.WritePair(doc, time.Now()); err != nil {
		t.Fatalf("WritePair 1: %v", err)
	}
	first, _ := m.ReadContent(m.SnapshotPath(doc.AutosaveID))

	if err := m.WritePair(doc, time.Now().Add(time.Second)); err != nil {
		t.Fatalf("WritePair 2: %v", err)
	}
	second, _ := m.ReadContent(m.SnapshotPath(doc.AutosaveID))

	if first != second {
		t.Fatalf("snapshot content changed without an edit: %q vs %q", first, second)
	}
}

func TestManager_NoTempResidue(t *testing.T) {
	m := newTestManager(t)
	doc := newTestDoc(t, "x")

	if err := m.WritePair(doc, time.Now()); err != nil {
		t.Fatalf("WritePair: %v", err)
	}

	entries, err := os.ReadDir(m.Dir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Fatalf("temp residue: %s", e.Name())
		}
	}
}

func TestManager_ListCandidatesFiltering(t *testing.T) {
	m := newTestManager(t)
	doc := newTestDoc(t, "keep me")
	if err := m.WritePair(doc, time.Now()); err != nil {
		t.Fatalf("WritePair: %v", err)
	}

	// Files that must not be reported as candidates.
	junk := []string{
		"unrelated.txt",
		DefaultPrefix + "UPPER.txt",            // not a valid autosave id
		DefaultPrefix + "stray.log",            // wrong extension
		DefaultPrefix + doc.AutosaveID + ".txt" + ".meta.json", // sidecar
	}
	for _, name := range junk {
		if err := os.WriteFile(filepath.Join(m.Dir(), name), []byte("junk"), 0644); err != nil {
			t.Fatalf("WriteFile %s: %v", name, err)
		}
	}

	candidates, err := m.ListCandidates()
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidates = %v, want exactly the real snapshot", candidates)
	}
	if candidates[0] != m.SnapshotPath(doc.AutosaveID) {
		t.Fatalf("candidate = %q", candidates[0])
	}
}

func TestManager_LoadMetaFallback(t *testing.T) {
	m := newTestManager(t)
	doc := newTestDoc(t, "orphan")
	if err := m.WritePair(doc, time.Now()); err != nil {
		t.Fatalf("WritePair: %v", err)
	}
	snapPath := m.SnapshotPath(doc.AutosaveID)

	// Corrupt the sidecar.
	if err := os.WriteFile(MetaPath(snapPath), []byte("{not json"), 0644); err != nil {
		t.Fatalf("corrupt sidecar: %v", err)
	}

	meta, ok := m.LoadMeta(snapPath)
	if ok {
		t.Fatal("LoadMeta ok = true for corrupt sidecar")
	}
	if meta.Title != "Recovered" {
		t.Fatalf("fallback title = %q, want %q", meta.Title, "Recovered")
	}
	if meta.Path() != "" {
		t.Fatalf("fallback path = %q, want empty", meta.Path())
	}

	// Missing sidecar behaves the same.
	os.Remove(MetaPath(snapPath))
	if _, ok := m.LoadMeta(snapPath); ok {
		t.Fatal("LoadMeta ok = true for missing sidecar")
	}
}

func TestManager_AutosaveIDFromPath(t *testing.T) {
	m := newTestManager(t)

	id, ok := m.AutosaveIDFromPath(m.SnapshotPath("01hq3vabc"))
	if !ok || id != "01hq3vabc" {
		t.Fatalf("AutosaveIDFromPath = %q, %v", id, ok)
	}

	bad := []string{"random.txt", DefaultPrefix + "x.json", "prefix_" + "y.txt"}
	for _, name := range bad {
		if _, ok := m.AutosaveIDFromPath(name); ok {
			t.Errorf("AutosaveIDFromPath(%q) ok = true", name)
		}
	}
}

func TestManager_RemovePair(t *testing.T) {
	m := newTestManager(t)
	doc := newTestDoc(t, "bye")
	if err := m.WritePair(doc, time.Now()); err != nil {
		t.Fatalf("WritePair: %v", err)
	}

	if err := m.RemovePair(doc.AutosaveID); err != nil {
		t.Fatalf("RemovePair: %v", err)
	}

	snapPath := m.SnapshotPath(doc.AutosaveID)
	if _, err := os.Stat(snapPath); !os.IsNotExist(err) {
		t.Fatal("snapshot still exists")
	}
	if _, err := os.Stat(MetaPath(snapPath)); !os.IsNotExist(err) {
		t.Fatal("sidecar still exists")
	}

	// Removing an absent pair is a no-op.
	if err := m.RemovePair(doc.AutosaveID); err != nil {
		t.Fatalf("RemovePair absent: %v", err)
	}
	if err := m.RemovePair(""); err != nil {
		t.Fatalf("RemovePair empty id: %v", err)
	}
}

func TestManager_RejectsUnsafeAutosaveID(t *testing.T) {
	m := newTestManager(t)
	doc := newTestDoc(t, "evil")
	doc.AutosaveID = "../../escape"

	err := m.WritePair(doc, time.Now())
	if !domain.IsDomainError(err, "TX-ARG-1001") {
		t.Fatalf("err = %v, want TX-ARG-1001", err)
	}
}
