package textfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/texterhq/texter-go/internal/core/domain"
)

func TestGateway_WriteReadRoundTrip(t *testing.T) {
	g := New()
	path := filepath.Join(t.TempDir(), "notes.txt")

	if err := g.Write(path, "hello\nworld"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := g.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "hello\nworld" {
		t.Fatalf("Read = %q, want %q", got, "hello\nworld")
	}
}

func TestGateway_WriteLeavesNoTempResidue(t *testing.T) {
	g := New()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")

	if err := g.Write(path, "content"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Fatalf("temp residue left behind: %s", e.Name())
		}
	}
}

func TestGateway_ReadMissing(t *testing.T) {
	g := New()
	_, err := g.Read(filepath.Join(t.TempDir(), "missing.txt"))
	if !domain.IsDomainError(err, "TX-FILE-5001") {
		t.Fatalf("err = %v, want TX-FILE-5001", err)
	}
}

func TestGateway_WriteToUnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks are not enforced")
	}

	g := New()
	dir := t.TempDir()
	if err := os.Chmod(dir, 0500); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	defer os.Chmod(dir, 0700)

	err := g.Write(filepath.Join(dir, "doc.txt"), "content")
	if !domain.IsDomainError(err, "TX-FILE-5002") {
		t.Fatalf("err = %v, want TX-FILE-5002", err)
	}
}

func TestGateway_DeleteIfExists(t *testing.T) {
	g := New()
	path := filepath.Join(t.TempDir(), "doc.txt")

	// Absent file is a no-op.
	if err := g.DeleteIfExists(path); err != nil {
		t.Fatalf("DeleteIfExists absent: %v", err)
	}

	if err := g.Write(path, "x"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := g.DeleteIfExists(path); err != nil {
		t.Fatalf("DeleteIfExists: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("file still exists after DeleteIfExists")
	}
}
